package validate

import (
	"bytes"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/ormasoftchile/actlint/pkg/schema"
)

// Constraint identifies how a rule is evaluated by the engine.
type Constraint int

const (
	// ConstraintSchema applies the kind's compiled JSON Schema.
	ConstraintSchema Constraint = iota
	// ConstraintExactlyOne requires exactly one of Fields on a mapping.
	ConstraintExactlyOne
	// ConstraintDependency requires Requires when Field matches Equals
	// (or is merely present, when Equals is empty).
	ConstraintDependency
	// ConstraintReference requires values to name keys of the mapping
	// at Scope.
	ConstraintReference
	// ConstraintGlob requires a sequence of valid glob patterns.
	ConstraintGlob
	// ConstraintCron requires a valid five-field cron expression.
	ConstraintCron
	// ConstraintEmbedded validates a sub-document against Kind and
	// attaches its errors as a nested state.
	ConstraintEmbedded
)

// Rule is one data-driven constraint. Rules carry no behaviour of
// their own: the engine interprets them, in declaration order, every
// time a document is validated.
type Rule struct {
	Constraint Constraint
	Path       string // JSON Pointer pattern; "*" matches any segment
	Code       string
	Title      string

	Fields   []string     // ConstraintExactlyOne: candidate fields
	Field    string       // ConstraintDependency: guard field
	Equals   []string     // ConstraintDependency: guard values; empty means "present"
	Requires string       // ConstraintDependency: required sibling field
	Scope    string       // ConstraintReference: pointer to the defining mapping
	Kind     DocumentKind // ConstraintEmbedded: sub-document kind
}

// Registry holds the compiled schema and ordered rule list for each
// document kind. It is immutable after construction and safe to share
// across concurrent validations.
type Registry struct {
	schemas map[DocumentKind]*jsonschema.Schema
	rules   map[DocumentKind][]Rule
}

// NewRegistry compiles the generated document schemas and assembles
// the per-kind rule sets.
func NewRegistry() (*Registry, error) {
	actionSchema, err := compileGenerated("action.json", schema.GenerateActionSchema)
	if err != nil {
		return nil, err
	}
	workflowSchema, err := compileGenerated("workflow.json", schema.GenerateWorkflowSchema)
	if err != nil {
		return nil, err
	}
	return &Registry{
		schemas: map[DocumentKind]*jsonschema.Schema{
			KindAction:   actionSchema,
			KindWorkflow: workflowSchema,
		},
		rules: map[DocumentKind][]Rule{
			KindAction:   actionRules(),
			KindWorkflow: workflowRules(),
		},
	}, nil
}

var defaultRegistry = sync.OnceValues(NewRegistry)

// DefaultRegistry returns the shared registry, built on first use.
func DefaultRegistry() (*Registry, error) {
	return defaultRegistry()
}

// Rules returns the ordered rule list for a document kind.
func (r *Registry) Rules(kind DocumentKind) []Rule {
	return r.rules[kind]
}

func compileGenerated(name string, gen func() ([]byte, error)) (*jsonschema.Schema, error) {
	data, err := gen()
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", name, err)
	}
	url := "https://github.com/ormasoftchile/actlint/schemas/" + name
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add %s resource: %w", name, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	return sch, nil
}

func actionRules() []Rule {
	return []Rule{
		{Constraint: ConstraintSchema, Code: CodeSchema, Title: "Schema validation"},
		{Constraint: ConstraintDependency, Path: "/runs", Field: "using",
			Equals: []string{"node12", "node16", "node20", "node24"}, Requires: "main",
			Code: CodeRequired, Title: "Missing required field: main"},
		{Constraint: ConstraintDependency, Path: "/runs", Field: "using",
			Equals: []string{"docker"}, Requires: "image",
			Code: CodeRequired, Title: "Missing required field: image"},
		{Constraint: ConstraintDependency, Path: "/runs", Field: "using",
			Equals: []string{"composite"}, Requires: "steps",
			Code: CodeRequired, Title: "Missing required field: steps"},
		{Constraint: ConstraintExactlyOne, Path: "/runs/steps/*",
			Fields: []string{"run", "uses"},
			Code:   CodeStepCommand, Title: "Step needs exactly one of: run, uses"},
		{Constraint: ConstraintDependency, Path: "/runs/steps/*", Field: "run",
			Requires: "shell",
			Code:     CodeRequired, Title: "Missing required field: shell"},
	}
}

func workflowRules() []Rule {
	return []Rule{
		{Constraint: ConstraintSchema, Code: CodeSchema, Title: "Schema validation"},
		{Constraint: ConstraintExactlyOne, Path: "/jobs/*",
			Fields: []string{"steps", "uses"},
			Code:   CodeJobDefinition, Title: "Job needs exactly one of: steps, uses"},
		{Constraint: ConstraintExactlyOne, Path: "/jobs/*/steps/*",
			Fields: []string{"run", "uses", "action"},
			Code:   CodeStepCommand, Title: "Step needs exactly one of: run, uses, action"},
		{Constraint: ConstraintEmbedded, Path: "/jobs/*/steps/*/action", Kind: KindAction,
			Code: CodeEmbeddedAction, Title: "Embedded action is invalid"},
		{Constraint: ConstraintReference, Path: "/jobs/*/needs", Scope: "/jobs",
			Code: CodeUnresolvedJob, Title: "Unresolved job reference"},
		{Constraint: ConstraintGlob, Path: "/on/push/paths",
			Code: CodeInvalidGlob, Title: "Invalid glob pattern"},
		{Constraint: ConstraintGlob, Path: "/on/push/paths-ignore",
			Code: CodeInvalidGlob, Title: "Invalid glob pattern"},
		{Constraint: ConstraintGlob, Path: "/on/pull_request/paths",
			Code: CodeInvalidGlob, Title: "Invalid glob pattern"},
		{Constraint: ConstraintGlob, Path: "/on/pull_request/paths-ignore",
			Code: CodeInvalidGlob, Title: "Invalid glob pattern"},
		{Constraint: ConstraintCron, Path: "/on/schedule/*/cron",
			Code: CodeInvalidCron, Title: "Invalid cron schedule"},
	}
}
