package schema

import (
	"github.com/invopop/jsonschema"
)

// Triggers models the `on` field of a workflow: a single event name, a
// list of event names, or a mapping of event name to configuration.
type Triggers map[string]any

// JSONSchema implements custom schema generation for the three
// accepted shapes of `on`.
func (Triggers) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Title: "Triggers",
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
			{Type: "object"},
		},
	}
}

// StringOrList is a field that accepts either a single string or a
// list of strings (runs-on, needs).
type StringOrList []string

// JSONSchema implements custom schema generation for StringOrList.
func (StringOrList) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		},
	}
}

// Permissions models a token permission grant: the "read-all" /
// "write-all" shorthand or a scope-to-access mapping.
type Permissions map[string]string

// JSONSchema implements custom schema generation for Permissions.
func (Permissions) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string", Enum: []any{"read-all", "write-all"}},
			{
				Type: "object",
				AdditionalProperties: &jsonschema.Schema{
					Type: "string",
					Enum: []any{"read", "write", "none"},
				},
			},
		},
	}
}

// Concurrency models the `concurrency` field: a group name or a
// mapping with group and cancel-in-progress.
type Concurrency map[string]any

// JSONSchema implements custom schema generation for Concurrency.
func (Concurrency) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "object"},
		},
	}
}

// InlineAction is an action definition embedded directly in a workflow
// step. The schema only pins the shape to a mapping; the full action
// schema is applied recursively by the validation engine so the
// sub-document's errors can be reported as a nested state.
type InlineAction map[string]any

// JSONSchema implements custom schema generation for InlineAction.
func (InlineAction) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "object",
		Description: "Inline action definition, validated against the action schema",
	}
}
