package schema

// Workflow is the top-level document defining an automation workflow
// (.github/workflows/*.yml).
type Workflow struct {
	Name        string          `yaml:"name,omitempty"        json:"name,omitempty"`
	RunName     string          `yaml:"run-name,omitempty"    json:"run-name,omitempty"`
	On          Triggers        `yaml:"on"                    json:"on" jsonschema:"required"`
	Permissions Permissions     `yaml:"permissions,omitempty" json:"permissions,omitempty"`
	Env         map[string]any  `yaml:"env,omitempty"         json:"env,omitempty"`
	Defaults    *Defaults       `yaml:"defaults,omitempty"    json:"defaults,omitempty"`
	Concurrency Concurrency     `yaml:"concurrency,omitempty" json:"concurrency,omitempty"`
	Jobs        map[string]*Job `yaml:"jobs"                  json:"jobs" jsonschema:"required"`
}

// Defaults specifies settings applied to every step that does not
// override them.
type Defaults struct {
	Run *RunDefaults `yaml:"run,omitempty" json:"run,omitempty"`
}

// RunDefaults configures how run steps are executed by default.
type RunDefaults struct {
	Shell            string `yaml:"shell,omitempty"             json:"shell,omitempty" jsonschema:"enum=bash,enum=pwsh,enum=python,enum=sh,enum=cmd,enum=powershell"`
	WorkingDirectory string `yaml:"working-directory,omitempty" json:"working-directory,omitempty"`
}

// Job is a single unit of the workflow, executed on a runner or
// delegated to a reusable workflow via Uses.
type Job struct {
	Name            string            `yaml:"name,omitempty"              json:"name,omitempty"`
	RunsOn          StringOrList      `yaml:"runs-on,omitempty"           json:"runs-on,omitempty"`
	Needs           StringOrList      `yaml:"needs,omitempty"             json:"needs,omitempty"`
	If              string            `yaml:"if,omitempty"                json:"if,omitempty"`
	Environment     any               `yaml:"environment,omitempty"       json:"environment,omitempty"`
	Permissions     Permissions       `yaml:"permissions,omitempty"       json:"permissions,omitempty"`
	Env             map[string]any    `yaml:"env,omitempty"               json:"env,omitempty"`
	Defaults        *Defaults         `yaml:"defaults,omitempty"          json:"defaults,omitempty"`
	Steps           []*Step           `yaml:"steps,omitempty"             json:"steps,omitempty"`
	Uses            string            `yaml:"uses,omitempty"              json:"uses,omitempty"`
	With            map[string]any    `yaml:"with,omitempty"              json:"with,omitempty"`
	Secrets         any               `yaml:"secrets,omitempty"           json:"secrets,omitempty"`
	TimeoutMinutes  int               `yaml:"timeout-minutes,omitempty"   json:"timeout-minutes,omitempty" jsonschema:"minimum=1"`
	Strategy        *Strategy         `yaml:"strategy,omitempty"          json:"strategy,omitempty"`
	ContinueOnError any               `yaml:"continue-on-error,omitempty" json:"continue-on-error,omitempty"`
	Container       any               `yaml:"container,omitempty"         json:"container,omitempty"`
	Services        map[string]any    `yaml:"services,omitempty"          json:"services,omitempty"`
	Concurrency     Concurrency       `yaml:"concurrency,omitempty"       json:"concurrency,omitempty"`
	Outputs         map[string]string `yaml:"outputs,omitempty"           json:"outputs,omitempty"`
}

// Strategy configures a job's build matrix.
type Strategy struct {
	Matrix      map[string]any `yaml:"matrix,omitempty"       json:"matrix,omitempty"`
	FailFast    *bool          `yaml:"fail-fast,omitempty"    json:"fail-fast,omitempty"`
	MaxParallel int            `yaml:"max-parallel,omitempty" json:"max-parallel,omitempty" jsonschema:"minimum=1"`
}

// Step is a single unit of work inside a job. Exactly one of Run, Uses
// or Action must be set; that constraint is enforced by the validation
// registry because JSON Schema reports it poorly.
type Step struct {
	ID               string         `yaml:"id,omitempty"                json:"id,omitempty"`
	Name             string         `yaml:"name,omitempty"              json:"name,omitempty"`
	If               string         `yaml:"if,omitempty"                json:"if,omitempty"`
	Uses             string         `yaml:"uses,omitempty"              json:"uses,omitempty"`
	Run              string         `yaml:"run,omitempty"               json:"run,omitempty"`
	Action           InlineAction   `yaml:"action,omitempty"            json:"action,omitempty"`
	Shell            string         `yaml:"shell,omitempty"             json:"shell,omitempty" jsonschema:"enum=bash,enum=pwsh,enum=python,enum=sh,enum=cmd,enum=powershell"`
	With             map[string]any `yaml:"with,omitempty"              json:"with,omitempty"`
	Env              map[string]any `yaml:"env,omitempty"               json:"env,omitempty"`
	WorkingDirectory string         `yaml:"working-directory,omitempty" json:"working-directory,omitempty"`
	ContinueOnError  any            `yaml:"continue-on-error,omitempty" json:"continue-on-error,omitempty"`
	TimeoutMinutes   int            `yaml:"timeout-minutes,omitempty"   json:"timeout-minutes,omitempty" jsonschema:"minimum=1"`
}
