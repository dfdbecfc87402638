package scoring

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed result.schema.json
var resultSchema []byte

// ResultSchema checks success documents against the documented result shape.
// A mismatch is drift to report, not a failure to return
type ResultSchema struct{ s *jsonschema.Schema }

// NewResultSchema compiles the embedded result schema
func NewResultSchema() (*ResultSchema, error) {
	s, err := compileSchema("result.schema.json", resultSchema)
	if err != nil {
		return nil, err
	}
	return &ResultSchema{s: s}, nil
}

// Check validates doc and returns the first violation, or nil
func (r *ResultSchema) Check(doc []byte) error {
	if r == nil || r.s == nil {
		return nil
	}
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}
	if err := r.s.Validate(v); err != nil {
		return fmt.Errorf("result does not match schema: %w", err)
	}
	return nil
}

func compileSchema(name string, raw []byte) (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	s, err := c.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return s, nil
}
