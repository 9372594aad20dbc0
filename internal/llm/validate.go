package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/expensewise/bill-digitizer/constants"
)

// BuildBillRecordSchema returns a JSON-Schema (draft 2020-12 subset) for the
// normalized record interchange shape. Bill_Amount must carry exactly two
// fractional digits and Bill_Category is constrained to the fixed taxonomy.
// Date and Time are best-effort strings and deliberately unconstrained.
func BuildBillRecordSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"Bill_Number":   map[string]any{"type": "string"},
			"Date":          map[string]any{"type": "string"},
			"Time":          map[string]any{"type": "string"},
			"Bill_Amount":   map[string]any{"type": "string", "pattern": `^\d+\.\d{2}$`},
			"Bill_Category": map[string]any{"type": "string", "enum": constants.AsStringSlice()},
		},
		"required": []string{"Bill_Number", "Date", "Time", "Bill_Amount", "Bill_Category"},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
