package manifest

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/Masterminds/semver/v3"

	"github.com/assafBarash/node-package-bootstrapper/internal/schema"
)

//go:embed schema/package.schema.json
var schemaBytes []byte

var (
	validator   *schema.Validator
	compileOnce sync.Once
	compileErr  error
)

func getValidator() (*schema.Validator, error) {
	compileOnce.Do(func() {
		validator, compileErr = schema.Compile("package.schema.json", schemaBytes)
	})
	return validator, compileErr
}

// Validate checks raw package.json bytes against the embedded schema and
// verifies that "version", when present, is strict semver. The error return
// is for unreadable input; problems with the document are reported as issues.
func Validate(data []byte) (*schema.Result, error) {
	v, err := getValidator()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	result, err := v.ValidateJSON(data)
	if err != nil {
		return nil, err
	}

	obj, err := Parse(data)
	if err != nil {
		return result, nil
	}
	if version, ok := obj.Get("version"); ok {
		if s, isStr := version.Str(); isStr {
			if _, err := semver.StrictNewVersion(s); err != nil {
				result.Valid = false
				result.Issues = append(result.Issues, schema.Issue{
					Path:    "/version",
					Message: fmt.Sprintf("%q is not a valid semantic version", s),
					Keyword: "semver",
				})
			}
		}
	}
	return result, nil
}
