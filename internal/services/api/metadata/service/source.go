package service

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"startupsignal/internal/services/api/metadata/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed metadata.schema.json
var sourceSchema []byte

var schema = jsonschema.MustCompileString("metadata.schema.json", string(sourceSchema))

// Read parses a metadata source. .yaml and .yml files are YAML, anything else is JSON.
// A missing file returns an error wrapping os.ErrNotExist
func Read(path string) (domain.Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Empty(), err
	}
	return Parse(raw, formatOf(path))
}

// Parse decodes raw in the given format ("json" or "yaml") and validates its shape
func Parse(raw []byte, format string) (domain.Metadata, error) {
	var doc any
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return domain.Empty(), fmt.Errorf("parse yaml: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(raw))
		if err := dec.Decode(&doc); err != nil {
			return domain.Empty(), fmt.Errorf("parse json: %w", err)
		}
	}
	if err := schema.Validate(doc); err != nil {
		return domain.Empty(), fmt.Errorf("metadata does not match schema: %w", err)
	}

	// shape is known good, a second typed decode cannot fail on types
	var m domain.Metadata
	var err error
	if format == "yaml" {
		err = yaml.Unmarshal(raw, &m)
	} else {
		err = json.Unmarshal(raw, &m)
	}
	if err != nil {
		return domain.Empty(), err
	}
	return m.Normalized(), nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}
