// Package validate implements the parse-then-validate pipeline for
// GitHub Action and Workflow documents. The two entry points,
// ValidateAction and ValidateWorkflow, are total: any input string
// produces a ValidationState, never a panic or an error return.
package validate

import (
	"github.com/ormasoftchile/actlint/pkg/document"
)

// DocumentKind selects which schema applies to a source document.
type DocumentKind string

const (
	KindAction   DocumentKind = "action"
	KindWorkflow DocumentKind = "workflow"
)

// ValidationState is the result of validating one source document.
// Errors are in detection order and empty for a valid document.
type ValidationState struct {
	ActionType DocumentKind      `json:"actionType"`
	Errors     []ValidationError `json:"errors"`
}

// IsValid reports whether the document passed validation.
func (s ValidationState) IsValid() bool { return len(s.Errors) == 0 }

// NestedState carries the errors of an embedded sub-document. The
// document kind is omitted: nested states always inherit it from the
// enclosing error's context.
type NestedState struct {
	Errors []ValidationError `json:"errors"`
}

// ValidationError is a tagged union with exactly two variants:
// SchemaError for semantic violations in a parsed document, and
// ParseError when the source text never became a document at all.
type ValidationError interface {
	validationError()
}

// SchemaError reports a semantic violation at a specific document path.
// States is only set when the violation originates in an embedded
// sub-document (or a failed schema alternative) whose own errors give
// the necessary context.
type SchemaError struct {
	Meta   ValidationErrorMetadata `json:"meta"`
	States []NestedState           `json:"states,omitempty"`
}

func (SchemaError) validationError() {}

// ParseError reports that the source text could not be parsed. A state
// holding one is always a single-error state: parse failures
// short-circuit semantic validation.
type ParseError struct {
	Meta document.ParseError `json:"meta"`
}

func (ParseError) validationError() {}

// ValidationErrorMetadata identifies and describes one schema
// violation. Path is a JSON Pointer into the document tree.
type ValidationErrorMetadata struct {
	Code   string `json:"code"`
	Path   string `json:"path"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

// Stable error codes for schema violations.
const (
	CodeRequired       = "missing-required-field"
	CodeWrongType      = "wrong-type"
	CodeEnum           = "invalid-enum-value"
	CodeConst          = "const-mismatch"
	CodePattern        = "pattern-mismatch"
	CodeFormat         = "format-mismatch"
	CodeUnknownField   = "unknown-field"
	CodeOneOf          = "one-of-mismatch"
	CodeAnyOf          = "any-of-mismatch"
	CodeMinItems       = "too-few-items"
	CodeMaxItems       = "too-many-items"
	CodeUniqueItems    = "duplicate-items"
	CodeMinLength      = "too-short"
	CodeMaxLength      = "too-long"
	CodeMinimum        = "below-minimum"
	CodeMaximum        = "above-maximum"
	CodeMultipleOf     = "not-multiple-of"
	CodeMinProperties  = "too-few-fields"
	CodeMaxProperties  = "too-many-fields"
	CodeSchema         = "schema-violation"
	CodeUnresolvedJob  = "unresolved-job"
	CodeInvalidGlob    = "invalid-glob"
	CodeInvalidCron    = "invalid-cron"
	CodeStepCommand    = "invalid-step-command"
	CodeJobDefinition  = "invalid-job-definition"
	CodeEmbeddedAction = "invalid-embedded-action"
)
