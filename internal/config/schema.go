// internal/config/schema.go
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var schemaJSON string

var schema = mustSchema()

func mustSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("config.schema.json", strings.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("config: add schema resource: %v", err))
	}
	s, err := compiler.Compile("config.schema.json")
	if err != nil {
		panic(fmt.Sprintf("config: compile schema: %v", err))
	}
	return s
}

// checkShape validates the raw document against the embedded schema:
// required keys, enums, scalar types, unknown keys. Legality of field
// combinations stays with the semantic validators.
func checkShape(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("config: decode: %w", err)
	}

	// The schema engine walks JSON-decoded values, so round-trip the
	// YAML document through JSON first.
	j, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("config: shape: %w", err)
	}
	var v any
	if err := json.Unmarshal(j, &v); err != nil {
		return fmt.Errorf("config: shape: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("config: shape: %w", err)
	}
	return nil
}
