package manifest

import (
	"testing"

	"github.com/assafBarash/node-package-bootstrapper/internal/fsys"
)

func TestValidate_NPMDefault(t *testing.T) {
	res, err := Validate([]byte(npmDefault))
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !res.Valid {
		t.Errorf("npm default manifest should be valid, got %v", res.Issues)
	}
}

func TestValidate_Issues(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		path    string
		keyword string
	}{
		{
			name:    "script not a string",
			input:   `{"name":"app","scripts":{"start":1}}`,
			path:    "/scripts/start",
			keyword: "type",
		},
		{
			name:    "uppercase name",
			input:   `{"name":"MyApp"}`,
			path:    "/name",
			keyword: "pattern",
		},
		{
			name:    "loose version",
			input:   `{"name":"app","version":"1.0"}`,
			path:    "/version",
			keyword: "semver",
		},
	}

	for _, tt := range tests {
		tt := tt // per-iteration copy (go 1.21 loop semantics)
		t.Run(tt.name, func(t *testing.T) {
			res, err := Validate([]byte(tt.input))
			if err != nil {
				t.Fatalf("Validate() error: %v", err)
			}
			if res.Valid {
				t.Fatal("expected invalid result")
			}
			found := false
			for _, issue := range res.Issues {
				if issue.Path == tt.path && issue.Keyword == tt.keyword {
					found = true
				}
			}
			if !found {
				t.Errorf("issues %v missing %s (%s)", res.Issues, tt.path, tt.keyword)
			}
		})
	}
}

func TestManagerValidate(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, npmDefault)

	res, err := NewManager(fsys.NewOS(), dir).Validate()
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !res.Valid {
		t.Errorf("expected valid, got %v", res.Issues)
	}
}
