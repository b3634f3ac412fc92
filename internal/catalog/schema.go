package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaSource string

// SchemaError reports a catalog that does not match the CUE schema.
type SchemaError struct {
	Name    string
	Details string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("catalog %s does not match schema: %s", e.Name, e.Details)
}

// validateSchema unifies the YAML document with #Catalog and requires the
// result to be concrete. Definitions are closed, so misspelled fields fail.
func validateSchema(name string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("failed to compile catalog schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Catalog"))

	file, err := cueyaml.Extract(name, data)
	if err != nil {
		return &SchemaError{Name: name, Details: formatCUEError(err)}
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return &SchemaError{Name: name, Details: formatCUEError(err)}
	}

	if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return &SchemaError{Name: name, Details: formatCUEError(err)}
	}
	return nil
}

// formatCUEError flattens a CUE error list into one line per error.
func formatCUEError(err error) string {
	var lines []string
	for _, e := range errors.Errors(err) {
		msg := errors.Details(e, nil)
		lines = append(lines, strings.TrimSpace(msg))
	}
	if len(lines) == 0 {
		return err.Error()
	}
	return strings.Join(lines, "; ")
}
