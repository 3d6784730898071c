package recipe

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"

	"github.com/assafBarash/node-package-bootstrapper/internal/schema"
)

//go:embed schema/recipe.schema.json
var schemaBytes []byte

var (
	validator   *schema.Validator
	compileOnce sync.Once
	compileErr  error
)

func getValidator() (*schema.Validator, error) {
	compileOnce.Do(func() {
		validator, compileErr = schema.Compile("recipe.schema.json", schemaBytes)
	})
	return validator, compileErr
}

// InvalidError lists the schema violations found in a recipe.
type InvalidError struct {
	Source string
	Issues []schema.Issue
}

func (e *InvalidError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return fmt.Sprintf("invalid recipe %s: %s", e.Source, strings.Join(parts, "; "))
}

// LoadFile reads a YAML or JSON recipe file.
func LoadFile(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recipe %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse validates and decodes recipe bytes. Input whose source ends in
// ".json", or whose first non-space byte is '{', is decoded as JSON;
// anything else as YAML. source names the input in error messages.
func Parse(data []byte, source string) (*Options, error) {
	if isJSON(data, source) {
		return parseJSON(data, source)
	}
	return parseYAML(data, source)
}

func isJSON(data []byte, source string) bool {
	if strings.EqualFold(filepath.Ext(source), ".json") {
		return true
	}
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func parseJSON(data []byte, source string) (*Options, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &Options{}, nil
	}
	v, err := getValidator()
	if err != nil {
		return nil, fmt.Errorf("loading recipe schema: %w", err)
	}
	res, err := v.ValidateJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parsing recipe %s: %w", source, err)
	}
	if !res.Valid {
		return nil, &InvalidError{Source: source, Issues: res.Issues}
	}

	var opts Options
	if err := json.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("decoding recipe %s: %w", source, err)
	}
	return &opts, nil
}

func parseYAML(data []byte, source string) (*Options, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing recipe %s: %w", source, err)
	}
	if raw == nil {
		return &Options{}, nil
	}

	v, err := getValidator()
	if err != nil {
		return nil, fmt.Errorf("loading recipe schema: %w", err)
	}
	res, err := v.ValidateValue(raw)
	if err != nil {
		return nil, fmt.Errorf("validating recipe %s: %w", source, err)
	}
	if !res.Valid {
		return nil, &InvalidError{Source: source, Issues: res.Issues}
	}

	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("decoding recipe %s: %w", source, err)
	}
	return &opts, nil
}
