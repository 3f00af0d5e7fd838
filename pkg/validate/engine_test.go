package validate

import (
	"strings"
	"testing"
)

// TestUnresolvedJobReference checks needs resolution for both the
// scalar and the list form.
func TestUnresolvedJobReference(t *testing.T) {
	src := `on: push
jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - run: make
  test:
    needs: build
    runs-on: ubuntu-latest
    steps:
      - run: make test
  deploy:
    needs: [test, publish]
    runs-on: ubuntu-latest
    steps:
      - run: make deploy
`
	state := ValidateWorkflow(src)
	se := findCode(t, state, CodeUnresolvedJob)
	if se.Meta.Path != "/jobs/deploy/needs/1" {
		t.Errorf("path = %s, want /jobs/deploy/needs/1", se.Meta.Path)
	}
	if !strings.Contains(se.Meta.Detail, "publish") {
		t.Errorf("detail = %q, should name the missing job", se.Meta.Detail)
	}
	for _, e := range state.Errors {
		if s, ok := e.(SchemaError); ok && s.Meta.Code == CodeUnresolvedJob && s.Meta.Path != "/jobs/deploy/needs/1" {
			t.Errorf("unexpected extra unresolved reference at %s", s.Meta.Path)
		}
	}
}

// TestInvalidGlobPattern checks path filter validation on push and
// pull_request triggers.
func TestInvalidGlobPattern(t *testing.T) {
	src := `on:
  push:
    paths:
      - "src/**"
      - "docs/[a-"
jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - run: make
`
	state := ValidateWorkflow(src)
	se := findCode(t, state, CodeInvalidGlob)
	if se.Meta.Path != "/on/push/paths/1" {
		t.Errorf("path = %s, want /on/push/paths/1", se.Meta.Path)
	}
}

// TestCronValidation checks both sides of schedule validation.
func TestCronValidation(t *testing.T) {
	good := `on:
  schedule:
    - cron: "30 5 * * 1"
jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - run: make
`
	if state := ValidateWorkflow(good); !state.IsValid() {
		t.Fatalf("valid cron rejected: %s", dump(t, state))
	}

	bad := strings.Replace(good, `"30 5 * * 1"`, `"90 5 * * 1"`, 1)
	state := ValidateWorkflow(bad)
	se := findCode(t, state, CodeInvalidCron)
	if se.Meta.Path != "/on/schedule/0/cron" {
		t.Errorf("path = %s, want /on/schedule/0/cron", se.Meta.Path)
	}
}

// TestStepCommandExclusivity checks that a step must pick exactly one
// of run, uses or an inline action.
func TestStepCommandExclusivity(t *testing.T) {
	src := `on: push
jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - name: both
        run: make
        uses: actions/checkout@v4
      - name: neither
`
	state := ValidateWorkflow(src)
	var paths []string
	for _, e := range state.Errors {
		if se, ok := e.(SchemaError); ok && se.Meta.Code == CodeStepCommand {
			paths = append(paths, se.Meta.Path)
		}
	}
	want := []string{"/jobs/build/steps/0", "/jobs/build/steps/1"}
	if len(paths) != 2 || paths[0] != want[0] || paths[1] != want[1] {
		t.Errorf("step command errors at %v, want %v", paths, want)
	}
}

// TestJobDefinitionExclusivity checks that a job is either a step list
// or a reusable workflow call, never both.
func TestJobDefinitionExclusivity(t *testing.T) {
	src := `on: push
jobs:
  build:
    uses: org/repo/.github/workflows/ci.yml@main
    steps:
      - run: make
`
	state := ValidateWorkflow(src)
	se := findCode(t, state, CodeJobDefinition)
	if se.Meta.Path != "/jobs/build" {
		t.Errorf("path = %s, want /jobs/build", se.Meta.Path)
	}
	if !strings.Contains(se.Meta.Detail, "steps") || !strings.Contains(se.Meta.Detail, "uses") {
		t.Errorf("detail = %q, should list the conflicting fields", se.Meta.Detail)
	}
}

// TestRunsBackendDependencies checks the using-specific required
// fields of an action's runs block.
func TestRunsBackendDependencies(t *testing.T) {
	cases := []struct {
		using   string
		missing string
	}{
		{"node20", "main"},
		{"docker", "image"},
		{"composite", "steps"},
	}
	for _, tc := range cases {
		src := "name: demo\ndescription: a demo\nruns:\n  using: " + tc.using + "\n"
		state := ValidateAction(src)
		se := findCode(t, state, CodeRequired)
		wantPath := "/runs/" + tc.missing
		found := false
		for _, e := range state.Errors {
			if s, ok := e.(SchemaError); ok && s.Meta.Code == CodeRequired && s.Meta.Path == wantPath {
				found = true
			}
		}
		if !found {
			t.Errorf("using %s: no required error at %s (first: %+v)", tc.using, wantPath, se.Meta)
		}
	}
}

// TestCompositeRunStepNeedsShell checks that composite run steps must
// declare a shell.
func TestCompositeRunStepNeedsShell(t *testing.T) {
	src := `name: demo
description: a demo
runs:
  using: composite
  steps:
    - run: make
`
	state := ValidateAction(src)
	found := false
	for _, e := range state.Errors {
		if se, ok := e.(SchemaError); ok && se.Meta.Code == CodeRequired && se.Meta.Path == "/runs/steps/0/shell" {
			found = true
		}
	}
	if !found {
		t.Errorf("no shell requirement reported: %s", dump(t, state))
	}

	withShell := src + "      shell: bash\n"
	if state := ValidateAction(withShell); !state.IsValid() {
		t.Errorf("run step with shell rejected: %s", dump(t, state))
	}
}

// TestEmbeddedActionNestedState checks that an inline action's errors
// surface as a nested state with paths relative to the sub-document.
func TestEmbeddedActionNestedState(t *testing.T) {
	src := `on: push
jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - action:
          name: inline
          description: broken inline action
          runs:
            using: docker
`
	state := ValidateWorkflow(src)
	se := findCode(t, state, CodeEmbeddedAction)
	if se.Meta.Path != "/jobs/build/steps/0/action" {
		t.Errorf("path = %s, want /jobs/build/steps/0/action", se.Meta.Path)
	}
	if len(se.States) != 1 || len(se.States[0].Errors) == 0 {
		t.Fatalf("expected one nested state with errors, got %+v", se.States)
	}
	nested, ok := se.States[0].Errors[0].(SchemaError)
	if !ok {
		t.Fatalf("nested error is %T, want SchemaError", se.States[0].Errors[0])
	}
	if nested.Meta.Code != CodeRequired || nested.Meta.Path != "/runs/image" {
		t.Errorf("nested error = %+v, want missing image at /runs/image", nested.Meta)
	}
}

// TestEmbeddedActionValid checks that a complete inline action raises
// nothing.
func TestEmbeddedActionValid(t *testing.T) {
	src := `on: push
jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - action:
          name: inline
          description: a complete inline action
          runs:
            using: node20
            main: index.js
`
	if state := ValidateWorkflow(src); !state.IsValid() {
		t.Errorf("valid inline action rejected: %s", dump(t, state))
	}
}

// TestTriggerAlternatives checks that a structurally impossible `on`
// value reports the failed alternatives as nested states.
func TestTriggerAlternatives(t *testing.T) {
	src := `on: 123
jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - run: make
`
	state := ValidateWorkflow(src)
	if state.IsValid() {
		t.Fatal("numeric `on` accepted")
	}
	found := false
	for _, e := range state.Errors {
		se, ok := e.(SchemaError)
		if !ok {
			continue
		}
		if (se.Meta.Code == CodeOneOf || se.Meta.Code == CodeAnyOf) && se.Meta.Path == "/on" {
			found = true
			if len(se.States) == 0 {
				t.Error("alternative mismatch should carry nested states")
			}
		}
	}
	if !found {
		t.Errorf("no alternatives error at /on: %s", dump(t, state))
	}
}

// TestRuleOrderStability checks that errors from different rules come
// out in registry order regardless of where they sit in the document.
func TestRuleOrderStability(t *testing.T) {
	src := `on:
  schedule:
    - cron: "bad"
jobs:
  deploy:
    needs: missing
    runs-on: ubuntu-latest
    steps:
      - run: make deploy
`
	state := ValidateWorkflow(src)
	var codes []string
	for _, e := range state.Errors {
		if se, ok := e.(SchemaError); ok {
			codes = append(codes, se.Meta.Code)
		}
	}
	// The reference rule is registered before the cron rule, so the
	// unresolved job must precede the cron error even though the cron
	// line appears first in the document.
	iRef, iCron := -1, -1
	for i, c := range codes {
		switch c {
		case CodeUnresolvedJob:
			iRef = i
		case CodeInvalidCron:
			iCron = i
		}
	}
	if iRef == -1 || iCron == -1 {
		t.Fatalf("expected both codes, got %v", codes)
	}
	if iRef > iCron {
		t.Errorf("rule order not respected: %v", codes)
	}
}
