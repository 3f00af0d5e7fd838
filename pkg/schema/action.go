// Package schema defines the Go struct types for GitHub Action and
// Workflow documents and generates the JSON Schemas the validator
// compiles at startup.
package schema

// Action is the top-level document describing a repository action
// (action.yml / action.yaml).
type Action struct {
	Name        string                   `yaml:"name"               json:"name"               jsonschema:"required"`
	Author      string                   `yaml:"author,omitempty"   json:"author,omitempty"`
	Description string                   `yaml:"description"        json:"description"        jsonschema:"required"`
	Inputs      map[string]*ActionInput  `yaml:"inputs,omitempty"   json:"inputs,omitempty"`
	Outputs     map[string]*ActionOutput `yaml:"outputs,omitempty"  json:"outputs,omitempty"`
	Runs        ActionRuns               `yaml:"runs"               json:"runs"               jsonschema:"required"`
	Branding    *Branding                `yaml:"branding,omitempty" json:"branding,omitempty"`
}

// ActionInput declares a single input parameter an action accepts.
type ActionInput struct {
	Description        string `yaml:"description"                  json:"description"                  jsonschema:"required"`
	Required           bool   `yaml:"required,omitempty"           json:"required,omitempty"`
	Default            any    `yaml:"default,omitempty"            json:"default,omitempty"`
	DeprecationMessage string `yaml:"deprecationMessage,omitempty" json:"deprecationMessage,omitempty"`
}

// ActionOutput declares a value the action exposes to later steps.
// Value is only meaningful for composite actions.
type ActionOutput struct {
	Description string `yaml:"description"     json:"description" jsonschema:"required"`
	Value       string `yaml:"value,omitempty" json:"value,omitempty"`
}

// ActionRuns selects the execution backend for the action. Which of
// the remaining fields are required depends on Using; those cross-field
// constraints live in the validation registry, not in the schema.
type ActionRuns struct {
	Using          string         `yaml:"using"                     json:"using" jsonschema:"required,enum=composite,enum=docker,enum=node12,enum=node16,enum=node20,enum=node24"`
	Main           string         `yaml:"main,omitempty"            json:"main,omitempty"`
	Pre            string         `yaml:"pre,omitempty"             json:"pre,omitempty"`
	PreIf          string         `yaml:"pre-if,omitempty"          json:"pre-if,omitempty"`
	Post           string         `yaml:"post,omitempty"            json:"post,omitempty"`
	PostIf         string         `yaml:"post-if,omitempty"         json:"post-if,omitempty"`
	Image          string         `yaml:"image,omitempty"           json:"image,omitempty"`
	Entrypoint     string         `yaml:"entrypoint,omitempty"      json:"entrypoint,omitempty"`
	PreEntrypoint  string         `yaml:"pre-entrypoint,omitempty"  json:"pre-entrypoint,omitempty"`
	PostEntrypoint string         `yaml:"post-entrypoint,omitempty" json:"post-entrypoint,omitempty"`
	Args           []string       `yaml:"args,omitempty"            json:"args,omitempty"`
	Env            map[string]any `yaml:"env,omitempty"             json:"env,omitempty"`
	Steps          []*ActionStep  `yaml:"steps,omitempty"           json:"steps,omitempty"`
}

// ActionStep is one step of a composite action.
type ActionStep struct {
	ID               string         `yaml:"id,omitempty"                json:"id,omitempty"`
	Name             string         `yaml:"name,omitempty"              json:"name,omitempty"`
	If               string         `yaml:"if,omitempty"                json:"if,omitempty"`
	Run              string         `yaml:"run,omitempty"               json:"run,omitempty"`
	Shell            string         `yaml:"shell,omitempty"             json:"shell,omitempty" jsonschema:"enum=bash,enum=pwsh,enum=python,enum=sh,enum=cmd,enum=powershell"`
	Uses             string         `yaml:"uses,omitempty"              json:"uses,omitempty"`
	With             map[string]any `yaml:"with,omitempty"              json:"with,omitempty"`
	Env              map[string]any `yaml:"env,omitempty"               json:"env,omitempty"`
	WorkingDirectory string         `yaml:"working-directory,omitempty" json:"working-directory,omitempty"`
	ContinueOnError  bool           `yaml:"continue-on-error,omitempty" json:"continue-on-error,omitempty"`
}

// Branding controls how a published action is rendered in the
// marketplace listing.
type Branding struct {
	Icon  string `yaml:"icon"  json:"icon"  jsonschema:"required"`
	Color string `yaml:"color" json:"color" jsonschema:"required,enum=white,enum=black,enum=yellow,enum=blue,enum=green,enum=orange,enum=red,enum=purple,enum=gray-dark"`
}
