package validate

import (
	"slices"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ormasoftchile/actlint/pkg/document"
)

// detailPrinter renders ErrorKind messages the same way ve.Error()
// does.
var detailPrinter = message.NewPrinter(language.English)

// structuralErrors validates the document tree against a compiled JSON
// Schema and maps the resulting error tree onto the error model. The
// walk is depth-first and sibling causes are sorted, so output order is
// a deterministic property of the schema alone.
func structuralErrors(root *document.Node, sch *jsonschema.Schema) []ValidationError {
	err := sch.Validate(root.JSONValue())
	if err == nil {
		return nil
	}
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []ValidationError{SchemaError{Meta: ValidationErrorMetadata{
			Code:   CodeSchema,
			Path:   "",
			Title:  "Schema violation",
			Detail: err.Error(),
		}}}
	}
	return mapCauses(verr)
}

func mapCauses(ve *jsonschema.ValidationError) []ValidationError {
	var out []ValidationError
	collect(ve, &out)
	return out
}

func collect(ve *jsonschema.ValidationError, out *[]ValidationError) {
	switch k := ve.ErrorKind.(type) {
	case *kind.AnyOf:
		*out = append(*out, alternativesError(ve, CodeAnyOf, "Value matches none of the accepted forms"))
		return

	case *kind.OneOf:
		*out = append(*out, alternativesError(ve, CodeOneOf, "Value must match exactly one of the accepted forms"))
		return

	case *kind.Required:
		// One independently addressable error per missing field.
		base := pointerOf(ve.InstanceLocation)
		for _, m := range k.Missing {
			*out = append(*out, SchemaError{Meta: ValidationErrorMetadata{
				Code:  CodeRequired,
				Path:  base + "/" + document.EscapeToken(m),
				Title: "Missing required field: " + m,
			}})
		}
		return

	case *kind.AdditionalProperties:
		base := pointerOf(ve.InstanceLocation)
		names := slices.Clone(k.Properties)
		slices.Sort(names)
		for _, name := range names {
			*out = append(*out, SchemaError{Meta: ValidationErrorMetadata{
				Code:  CodeUnknownField,
				Path:  base + "/" + document.EscapeToken(name),
				Title: "Unknown field: " + name,
			}})
		}
		return
	}

	if len(ve.Causes) > 0 {
		for _, c := range sortedCauses(ve.Causes) {
			collect(c, out)
		}
		return
	}

	code, title := codeFor(ve.ErrorKind)
	*out = append(*out, SchemaError{Meta: ValidationErrorMetadata{
		Code:   code,
		Path:   pointerOf(ve.InstanceLocation),
		Title:  title,
		Detail: ve.ErrorKind.LocalizedString(detailPrinter),
	}})
}

// sortedCauses orders sibling causes by instance path, then schema
// location. The validator walks Go maps, so the raw cause order varies
// between runs.
func sortedCauses(causes []*jsonschema.ValidationError) []*jsonschema.ValidationError {
	out := slices.Clone(causes)
	slices.SortStableFunc(out, func(a, b *jsonschema.ValidationError) int {
		if c := slices.Compare(a.InstanceLocation, b.InstanceLocation); c != 0 {
			return c
		}
		return strings.Compare(a.SchemaURL, b.SchemaURL)
	})
	return out
}

// alternativesError turns a failed anyOf/oneOf into a single error
// whose nested states carry the failure of each alternative. The
// causes of an alternatives node track the schema's own branch order,
// so they are not re-sorted.
func alternativesError(ve *jsonschema.ValidationError, code, title string) SchemaError {
	se := SchemaError{Meta: ValidationErrorMetadata{
		Code:   code,
		Path:   pointerOf(ve.InstanceLocation),
		Title:  title,
		Detail: detailPrinter.Sprintf("none of the %d alternatives matched", len(ve.Causes)),
	}}
	for _, c := range ve.Causes {
		se.States = append(se.States, NestedState{Errors: mapCauses(c)})
	}
	return se
}

func codeFor(k any) (code, title string) {
	switch k.(type) {
	case *kind.Type:
		return CodeWrongType, "Wrong type"
	case *kind.Enum:
		return CodeEnum, "Value is not one of the allowed values"
	case *kind.Const:
		return CodeConst, "Value does not equal the required constant"
	case *kind.Pattern:
		return CodePattern, "Value does not match the required pattern"
	case *kind.Format:
		return CodeFormat, "Value does not match the required format"
	case *kind.FalseSchema:
		return CodeUnknownField, "Field is not allowed here"
	case *kind.MinItems:
		return CodeMinItems, "Too few items"
	case *kind.MaxItems:
		return CodeMaxItems, "Too many items"
	case *kind.UniqueItems:
		return CodeUniqueItems, "Items must be unique"
	case *kind.MinLength:
		return CodeMinLength, "Value is too short"
	case *kind.MaxLength:
		return CodeMaxLength, "Value is too long"
	case *kind.Minimum:
		return CodeMinimum, "Value is below the minimum"
	case *kind.Maximum:
		return CodeMaximum, "Value is above the maximum"
	case *kind.MultipleOf:
		return CodeMultipleOf, "Value is not a multiple of the required factor"
	case *kind.MinProperties:
		return CodeMinProperties, "Too few fields"
	case *kind.MaxProperties:
		return CodeMaxProperties, "Too many fields"
	default:
		return CodeSchema, "Schema violation"
	}
}

// pointerOf joins an instance location into a JSON Pointer.
func pointerOf(loc []string) string {
	if len(loc) == 0 {
		return ""
	}
	toks := make([]string, len(loc))
	for i, t := range loc {
		toks[i] = document.EscapeToken(t)
	}
	return "/" + strings.Join(toks, "/")
}
