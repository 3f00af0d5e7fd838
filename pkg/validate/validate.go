package validate

import (
	"github.com/ormasoftchile/actlint/pkg/document"
)

// ValidateAction validates source text as a GitHub Action definition.
func ValidateAction(src string) ValidationState {
	return ValidateSource(src, KindAction)
}

// ValidateWorkflow validates source text as a GitHub Workflow
// definition.
func ValidateWorkflow(src string) ValidationState {
	return ValidateSource(src, KindWorkflow)
}

// ValidateSource validates source text against an explicit document
// kind. The returned state always has a non-nil Errors slice; a parse
// failure yields exactly one error and nothing else.
func ValidateSource(src string, kind DocumentKind) ValidationState {
	state := ValidationState{ActionType: kind, Errors: []ValidationError{}}

	doc, perr := document.Parse(src)
	if perr != nil {
		state.Errors = append(state.Errors, ParseError{Meta: *perr})
		return state
	}

	reg, err := DefaultRegistry()
	if err != nil {
		// Only reachable if a built-in schema fails to compile.
		// Reported as data so the entry points stay total.
		state.Errors = append(state.Errors, SchemaError{Meta: ValidationErrorMetadata{
			Code:   CodeSchema,
			Path:   "",
			Title:  "Schema registry unavailable",
			Detail: err.Error(),
		}})
		return state
	}

	state.Errors = append(state.Errors, reg.Validate(doc.Root, kind)...)
	return state
}
