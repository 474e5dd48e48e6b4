package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// requestSchema is the JSON Schema for the request envelope. Unknown keys
// are tolerated; only typed fields are checked.
var requestSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"action": map[string]any{
			"type": "string",
			"enum": []any{"start", "response"},
		},
		"unitId": map[string]any{
			"type": "string",
		},
		"answer": map[string]any{
			"type": "string",
		},
		"rawResponse": map[string]any{
			"type": "string",
		},
		"isCorrect": map[string]any{
			"type": "boolean",
		},
		"reset": map[string]any{
			"type": "boolean",
		},
	},
}

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
)

// validateRequest checks a parsed payload against the envelope schema.
func validateRequest(parsed any) error {
	compiled, err := compiledRequestSchema()
	if err != nil {
		return fmt.Errorf("compile request schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return &ValidationError{Reason: "request does not match envelope", Err: err}
	}
	return nil
}

// compiledRequestSchema compiles the schema once and caches it.
func compiledRequestSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value, not raw
		// bytes. Marshal then unmarshal to get a clean representation.
		defBytes, err := json.Marshal(requestSchema)
		if err != nil {
			compiledSchemaErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compiledSchemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://adaptive-request.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compiledSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compiledSchemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, compiledSchemaErr
}
