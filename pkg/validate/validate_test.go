package validate

import (
	"encoding/json"
	"strings"
	"testing"
)

const validWorkflow = `name: ci
on:
  push:
    branches:
      - main
jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - run: make build
`

const validAction = `name: setup-demo
description: Installs the demo toolchain
runs:
  using: node20
  main: index.js
`

// TestValidateWorkflowAccepted checks that a well-formed workflow
// produces an empty, non-nil error list.
func TestValidateWorkflowAccepted(t *testing.T) {
	state := ValidateWorkflow(validWorkflow)
	if !state.IsValid() {
		t.Fatalf("expected valid, got %d error(s): %s", len(state.Errors), dump(t, state))
	}
	if state.Errors == nil {
		t.Error("Errors must be non-nil even when empty")
	}
	if state.ActionType != KindWorkflow {
		t.Errorf("actionType = %s, want workflow", state.ActionType)
	}
}

// TestValidateActionAccepted checks the action entry point on a
// well-formed document.
func TestValidateActionAccepted(t *testing.T) {
	state := ValidateAction(validAction)
	if !state.IsValid() {
		t.Fatalf("expected valid, got: %s", dump(t, state))
	}
	if state.ActionType != KindAction {
		t.Errorf("actionType = %s, want action", state.ActionType)
	}
}

// TestValidateEmptySource checks that empty input yields exactly one
// parse error with a pinned location.
func TestValidateEmptySource(t *testing.T) {
	state := ValidateAction("")
	if len(state.Errors) != 1 {
		t.Fatalf("got %d errors, want exactly 1", len(state.Errors))
	}
	pe, ok := state.Errors[0].(ParseError)
	if !ok {
		t.Fatalf("error is %T, want ParseError", state.Errors[0])
	}
	if pe.Meta.Code != "empty-source" {
		t.Errorf("code = %s, want empty-source", pe.Meta.Code)
	}
	loc := pe.Meta.Location
	if loc == nil || loc.Index != 0 || loc.Line != 1 || loc.Column != 1 {
		t.Errorf("location = %+v, want {0 1 1}", loc)
	}
}

// TestValidateSyntaxError checks that broken YAML short-circuits to a
// single parse error: no schema errors may ride along.
func TestValidateSyntaxError(t *testing.T) {
	state := ValidateWorkflow("jobs:\n  build: [\n")
	if len(state.Errors) != 1 {
		t.Fatalf("got %d errors, want exactly 1", len(state.Errors))
	}
	pe, ok := state.Errors[0].(ParseError)
	if !ok {
		t.Fatalf("error is %T, want ParseError", state.Errors[0])
	}
	if pe.Meta.Code != "parse-error" {
		t.Errorf("code = %s, want parse-error", pe.Meta.Code)
	}
}

// TestValidateMissingRequiredField checks that each missing required
// field is its own addressable error.
func TestValidateMissingRequiredField(t *testing.T) {
	src := `description: Installs the demo toolchain
runs:
  using: node20
  main: index.js
`
	state := ValidateAction(src)
	if len(state.Errors) != 1 {
		t.Fatalf("got %d errors, want 1: %s", len(state.Errors), dump(t, state))
	}
	se, ok := state.Errors[0].(SchemaError)
	if !ok {
		t.Fatalf("error is %T, want SchemaError", state.Errors[0])
	}
	if se.Meta.Code != CodeRequired {
		t.Errorf("code = %s, want %s", se.Meta.Code, CodeRequired)
	}
	if se.Meta.Path != "/name" {
		t.Errorf("path = %s, want /name", se.Meta.Path)
	}
	if !strings.Contains(se.Meta.Title, "name") {
		t.Errorf("title = %q, should name the missing field", se.Meta.Title)
	}
}

// TestValidateUnknownField checks unknown-field reporting with a path
// to the offending key.
func TestValidateUnknownField(t *testing.T) {
	src := validAction + "colour: red\n"
	state := ValidateAction(src)
	se := findCode(t, state, CodeUnknownField)
	if se.Meta.Path != "/colour" {
		t.Errorf("path = %s, want /colour", se.Meta.Path)
	}
}

// TestValidateDeterministic checks that repeated validation of the same
// input marshals to byte-identical JSON.
func TestValidateDeterministic(t *testing.T) {
	src := `on:
  schedule:
    - cron: "not a cron"
jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - run: make
  deploy:
    needs: [build, missing]
    runs-on: ubuntu-latest
    steps:
      - run: make deploy
`
	first := dump(t, ValidateWorkflow(src))
	for i := 0; i < 5; i++ {
		if got := dump(t, ValidateWorkflow(src)); got != first {
			t.Fatalf("run %d differs:\n%s\nvs\n%s", i, got, first)
		}
	}
}

// TestDeterministicUnknownFieldOrder checks that several unknown
// fields on one mapping always come out in the same order: the
// offending names arrive in map order from the schema library, so they
// must be sorted before emission.
func TestDeterministicUnknownFieldOrder(t *testing.T) {
	src := validAction + "zeta: 1\nalpha: 2\nmike: 3\n"
	first := dump(t, ValidateAction(src))
	for i := 0; i < 30; i++ {
		if got := dump(t, ValidateAction(src)); got != first {
			t.Fatalf("run %d differs:\n%s\nvs\n%s", i, got, first)
		}
	}

	state := ValidateAction(src)
	var paths []string
	for _, e := range state.Errors {
		if se, ok := e.(SchemaError); ok && se.Meta.Code == CodeUnknownField {
			paths = append(paths, se.Meta.Path)
		}
	}
	want := []string{"/alpha", "/mike", "/zeta"}
	if len(paths) != 3 || paths[0] != want[0] || paths[1] != want[1] || paths[2] != want[2] {
		t.Errorf("unknown field paths = %v, want %v", paths, want)
	}
}

// TestDeterministicSiblingTypeErrors checks that type violations on
// sibling fields are emitted in instance path order, not in the map
// order the schema library walks them in.
func TestDeterministicSiblingTypeErrors(t *testing.T) {
	src := `name: [1]
description: [2]
author: [3]
runs:
  using: node20
  main: index.js
`
	first := dump(t, ValidateAction(src))
	for i := 0; i < 30; i++ {
		if got := dump(t, ValidateAction(src)); got != first {
			t.Fatalf("run %d differs:\n%s\nvs\n%s", i, got, first)
		}
	}

	state := ValidateAction(src)
	var paths []string
	for _, e := range state.Errors {
		if se, ok := e.(SchemaError); ok && se.Meta.Code == CodeWrongType {
			paths = append(paths, se.Meta.Path)
		}
	}
	want := []string{"/author", "/description", "/name"}
	if len(paths) != 3 || paths[0] != want[0] || paths[1] != want[1] || paths[2] != want[2] {
		t.Errorf("wrong-type paths = %v, want %v", paths, want)
	}
}

// TestWrongTypeDetailIsReadable checks that a type violation's detail
// is the library's rendered message, not a struct dump.
func TestWrongTypeDetailIsReadable(t *testing.T) {
	src := `name: [1]
description: a demo
runs:
  using: node20
  main: index.js
`
	state := ValidateAction(src)
	se := findCode(t, state, CodeWrongType)
	if strings.Contains(se.Meta.Detail, "&{") {
		t.Errorf("detail is a struct dump: %q", se.Meta.Detail)
	}
	if !strings.Contains(se.Meta.Detail, "got") || !strings.Contains(se.Meta.Detail, "want") {
		t.Errorf("detail = %q, want a got/want message", se.Meta.Detail)
	}
}

// TestStateSerialization checks the JSON wire shape of a state.
func TestStateSerialization(t *testing.T) {
	state := ValidateAction("")
	data, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v["actionType"] != "action" {
		t.Errorf("actionType = %v, want action", v["actionType"])
	}
	errs, ok := v["errors"].([]any)
	if !ok || len(errs) != 1 {
		t.Fatalf("errors = %v, want a one-element array", v["errors"])
	}
	meta := errs[0].(map[string]any)["meta"].(map[string]any)
	if meta["code"] != "empty-source" {
		t.Errorf("meta.code = %v, want empty-source", meta["code"])
	}
	if _, present := errs[0].(map[string]any)["states"]; present {
		t.Error("states should be omitted for parse errors")
	}
}

func dump(t *testing.T, state ValidationState) string {
	t.Helper()
	data, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}
	return string(data)
}

func findCode(t *testing.T, state ValidationState, code string) SchemaError {
	t.Helper()
	for _, e := range state.Errors {
		if se, ok := e.(SchemaError); ok && se.Meta.Code == code {
			return se
		}
	}
	t.Fatalf("no error with code %s in: %s", code, dump(t, state))
	return SchemaError{}
}
