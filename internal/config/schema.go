package config

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/params.schema.json
var schemaFS embed.FS

// ValidateSchema re-encodes p as JSON and checks it against the
// embedded params schema, grounded in hellsoul86-voxelcraft.ai's
// jsonschema.Compile + Validate pattern (internal/protocol/
// schemas_test.go). Called in addition to Params.Validate's
// hand-written cross-field checks — the schema catches shape/type
// mistakes a YAML author might make before they ever reach Go code.
func ValidateSchema(p Params) error {
	compiler := jsonschema.NewCompiler()
	raw, err := schemaFS.ReadFile("schemas/params.schema.json")
	if err != nil {
		return fmt.Errorf("config: read embedded schema: %w", err)
	}
	var schemaDoc any
	if err := json.Unmarshal(raw, &schemaDoc); err != nil {
		return fmt.Errorf("config: parse embedded schema: %w", err)
	}
	if err := compiler.AddResource("params.schema.json", bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("config: load embedded schema: %w", err)
	}
	schema, err := compiler.Compile("params.schema.json")
	if err != nil {
		return fmt.Errorf("config: compile embedded schema: %w", err)
	}

	encoded, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("config: encode params: %w", err)
	}
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return fmt.Errorf("config: decode params: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("config: schema validation: %w", err)
	}
	return nil
}
