package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// GenerateActionSchema produces a JSON Schema Draft 2020-12 document
// from the Go Action struct using invopop/jsonschema.
func GenerateActionSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = false

	s := r.Reflect(&Action{})
	s.ID = "https://github.com/ormasoftchile/actlint/schemas/action.json"
	s.Title = "GitHub Action"
	s.Description = "Schema for action.yml / action.yaml documents (Draft 2020-12)"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal action schema: %w", err)
	}
	return data, nil
}

// GenerateWorkflowSchema produces a JSON Schema Draft 2020-12 document
// from the Go Workflow struct using invopop/jsonschema.
func GenerateWorkflowSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = false

	s := r.Reflect(&Workflow{})
	s.ID = "https://github.com/ormasoftchile/actlint/schemas/workflow.json"
	s.Title = "GitHub Workflow"
	s.Description = "Schema for .github/workflows YAML documents (Draft 2020-12)"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal workflow schema: %w", err)
	}
	return data, nil
}
