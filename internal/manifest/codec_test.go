package manifest

import (
	"encoding/json"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"
)

const npmDefault = `{
  "name": "test-app",
  "version": "1.0.0",
  "description": "",
  "main": "index.js",
  "scripts": {
    "test": "echo \"Error: no test specified\" && exit 1"
  },
  "keywords": [],
  "author": "",
  "license": "ISC"
}
`

func TestParseEncode_RoundTripPreservesOrder(t *testing.T) {
	obj, err := Parse([]byte(npmDefault))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	want := []string{"name", "version", "description", "main", "scripts", "keywords", "author", "license"}
	if got := obj.Keys(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	out, err := Encode(obj)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if string(out) != npmDefault {
		t.Errorf("Encode() mismatch\ngot:\n%s\nwant:\n%s", out, npmDefault)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"truncated":     `{"name":`,
		"not an object": `["a"]`,
		"trailing data": `{} {}`,
		"empty":         ``,
	}
	for name, input := range tests {
		name, input := name, input // per-iteration copy (go 1.21 loop semantics)
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(input)); err == nil {
				t.Errorf("Parse(%q) expected error", input)
			}
		})
	}
}

func TestEncode_NoHTMLEscaping(t *testing.T) {
	obj := NewObject().Set("scripts", ObjectValue(NewObject().Set("build", String("tsc && node a.js > out.log"))))
	out, err := Encode(obj)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `"tsc && node a.js > out.log"`) {
		t.Errorf("Encode() escaped script: %s", out)
	}
}

func TestEncode_ValuesOfEveryKind(t *testing.T) {
	obj := NewObject().
		Set("s", String("x")).
		Set("n", Number("1.5")).
		Set("b", Bool(true)).
		Set("z", Null()).
		Set("a", Array(String("one"), Number("2"))).
		Set("o", ObjectValue(nil))

	out, err := Encode(obj)
	if err != nil {
		t.Fatal(err)
	}

	var generic map[string]any
	if err := json.Unmarshal(out, &generic); err != nil {
		t.Fatalf("Encode() produced invalid JSON: %v\n%s", err, out)
	}
	if generic["n"] != 1.5 || generic["b"] != true || generic["z"] != nil {
		t.Errorf("unexpected decoded values: %v", generic)
	}
}

func TestEncode_InvalidNumber(t *testing.T) {
	if _, err := Encode(NewObject().Set("n", Number("0x1F"))); err == nil {
		t.Fatal("expected error for invalid number literal")
	}
}

func TestObjectMerge(t *testing.T) {
	base := NewObject().Set("name", String("app")).Set("scripts", String("old")).Set("license", String("ISC"))
	patch := NewObject().Set("scripts", String("new")).Set("typing", String("index.d.ts"))

	base.Merge(patch)

	if got := strings.Join(base.Keys(), ","); got != "name,scripts,license,typing" {
		t.Errorf("Keys() = %s", got)
	}
	if v, _ := base.Get("scripts"); v.str != "new" {
		t.Errorf("scripts = %q, want %q", v.str, "new")
	}
	if v, _ := base.Get("license"); v.str != "ISC" {
		t.Errorf("license = %q, want %q", v.str, "ISC")
	}
}

func TestNilObjectAccessors(t *testing.T) {
	var o *Object
	if len(o.Keys()) != 0 || o.Keys() != nil {
		t.Error("nil object should be empty")
	}
	if _, ok := o.Get("x"); ok {
		t.Error("nil object Get should miss")
	}
	NewObject().Merge(nil)
}

func TestUnmarshalYAML_KeepsOrderAndTypes(t *testing.T) {
	src := `
zeta: last-alpha-first-in-doc
main: build/index.js
private: true
count: 3
ratio: 0.5
nothing: ~
files:
  - build
nested:
  b: 1
  a: 2
`
	var obj Object
	if err := yaml.Unmarshal([]byte(src), &obj); err != nil {
		t.Fatalf("yaml.Unmarshal() error: %v", err)
	}

	if got := strings.Join(obj.Keys(), ","); got != "zeta,main,private,count,ratio,nothing,files,nested" {
		t.Errorf("Keys() = %s", got)
	}
	if v, _ := obj.Get("private"); v.Kind() != KindBool {
		t.Errorf("private kind = %s, want boolean", v.Kind())
	}
	if v, _ := obj.Get("count"); v.num != "3" {
		t.Errorf("count = %v, want 3", v.num)
	}
	if v, _ := obj.Get("ratio"); v.num != "0.5" {
		t.Errorf("ratio = %v, want 0.5", v.num)
	}
	if v, _ := obj.Get("nothing"); v.Kind() != KindNull {
		t.Errorf("nothing kind = %s, want null", v.Kind())
	}
	nested, _ := obj.Get("nested")
	inner, ok := nested.Object()
	if !ok || strings.Join(inner.Keys(), ",") != "b,a" {
		t.Errorf("nested keys = %v", inner.Keys())
	}
}

func TestUnmarshalYAML_RejectsScalarForObject(t *testing.T) {
	var holder struct {
		Params *Object `yaml:"params"`
	}
	if err := yaml.Unmarshal([]byte("params: nope\n"), &holder); err == nil {
		t.Fatal("expected error decoding scalar into Object")
	}
}

func TestUnmarshalJSON(t *testing.T) {
	var holder struct {
		Params *Object `json:"params"`
	}
	if err := json.Unmarshal([]byte(`{"params":{"b":1,"a":{"x":true}}}`), &holder); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if got := strings.Join(holder.Params.Keys(), ","); got != "b,a" {
		t.Errorf("Keys() = %s", got)
	}
}

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
	}{
		{"build/index.js", KindString},
		{"true", KindBool},
		{"42", KindNumber},
		{"null", KindNull},
		{`{"node":">=18"}`, KindObject},
		{`["a","b"]`, KindArray},
		{"1abc", KindString},
		{"", KindString},
	}
	for _, tt := range tests {
		if got := ParseLiteral(tt.in).Kind(); got != tt.kind {
			t.Errorf("ParseLiteral(%q).Kind() = %s, want %s", tt.in, got, tt.kind)
		}
	}
}
