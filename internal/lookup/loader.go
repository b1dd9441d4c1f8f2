package lookup

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const (
	schemaURL = "schema://lookup-tables.json"
	filePerm  = 0o644
)

// ErrInvalidTables is returned when a tables document fails schema validation.
var ErrInvalidTables = errors.New("invalid lookup tables")

var (
	//go:embed tables.yaml
	defaultTables []byte

	//go:embed tables.schema.json
	schemaJSON string
)

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("adding tables schema: %w", err)
	}

	return compiler.Compile(schemaURL)
})

// Default returns the embedded tables.
func Default() (*Tables, error) {
	return Parse(defaultTables)
}

// Load reads and validates a tables file.
func Load(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables file: %w", err)
	}

	return Parse(data)
}

// LoadOrDefault loads path, or the embedded tables when path is empty.
func LoadOrDefault(path string) (*Tables, error) {
	if path == "" {
		return Default()
	}

	return Load(path)
}

// Parse decodes and validates a tables document.
func Parse(data []byte) (*Tables, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse tables YAML: %w", err)
	}

	if err := validateSchema(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTables, err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode tables: %w", err)
	}

	return newTables(doc), nil
}

// validateSchema checks a decoded YAML tree against the embedded schema.
// The tree goes through JSON so numbers reach the validator as json.Number.
func validateSchema(raw any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compiling tables schema: %w", err)
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("tables are not JSON-compatible: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(encoded))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return fmt.Errorf("re-reading tables: %w", err)
	}

	return schema.Validate(value)
}

// Marshal serializes a document to YAML.
func Marshal(doc Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

// WriteFile writes a document to path.
func WriteFile(path string, doc Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal tables: %w", err)
	}

	return os.WriteFile(path, data, filePerm)
}
