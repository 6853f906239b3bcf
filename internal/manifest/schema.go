package manifest

import (
	_ "embed"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/thoreinstein/blue-gardener/internal/errors"
)

//go:embed schema.json
var schemaJSON []byte

var (
	compiledSchema *gojsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

func getSchema() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiledSchema, compileErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return compiledSchema, compileErr
}

// Validate checks raw manifest JSON against the manifest schema. It returns
// one description per violation, or an error if validation could not run.
func Validate(data []byte) ([]string, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, errors.Wrap(err, "compiling manifest schema")
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, errors.Wrap(err, "validating manifest")
	}
	if result.Valid() {
		return nil, nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return problems, nil
}
