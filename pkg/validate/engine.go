package validate

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/robfig/cron/v3"

	"github.com/ormasoftchile/actlint/pkg/document"
)

// Validate runs every rule registered for kind against the document
// tree rooted at root. Errors come out in rule declaration order, and
// within a rule in document order, so two runs over the same input
// always produce the same result.
func (r *Registry) Validate(root *document.Node, kind DocumentKind) []ValidationError {
	var out []ValidationError
	for _, rule := range r.rules[kind] {
		out = append(out, r.eval(root, kind, rule)...)
	}
	return out
}

func (r *Registry) eval(root *document.Node, kind DocumentKind, rule Rule) []ValidationError {
	switch rule.Constraint {
	case ConstraintSchema:
		return structuralErrors(root, r.schemas[kind])
	case ConstraintExactlyOne:
		return evalExactlyOne(root, rule)
	case ConstraintDependency:
		return evalDependency(root, rule)
	case ConstraintReference:
		return evalReference(root, rule)
	case ConstraintGlob:
		return evalGlob(root, rule)
	case ConstraintCron:
		return evalCron(root, rule)
	case ConstraintEmbedded:
		return r.evalEmbedded(root, rule)
	default:
		return nil
	}
}

func evalExactlyOne(root *document.Node, rule Rule) []ValidationError {
	var out []ValidationError
	for _, m := range root.Find(rule.Path) {
		// Shape violations are the schema rule's to report.
		if m.Node.Kind != document.Mapping {
			continue
		}
		var found []string
		for _, f := range rule.Fields {
			if m.Node.Child(f) != nil {
				found = append(found, f)
			}
		}
		if len(found) == 1 {
			continue
		}
		want := strings.Join(rule.Fields, ", ")
		detail := fmt.Sprintf("exactly one of %s must be set; none are", want)
		if len(found) > 1 {
			detail = fmt.Sprintf("exactly one of %s must be set; found %s", want, strings.Join(found, ", "))
		}
		out = append(out, SchemaError{Meta: ValidationErrorMetadata{
			Code:   rule.Code,
			Path:   m.Path,
			Title:  rule.Title,
			Detail: detail,
		}})
	}
	return out
}

func evalDependency(root *document.Node, rule Rule) []ValidationError {
	var out []ValidationError
	for _, m := range root.Find(rule.Path) {
		if m.Node.Kind != document.Mapping {
			continue
		}
		guard := m.Node.Child(rule.Field)
		if guard == nil {
			continue
		}
		if len(rule.Equals) > 0 {
			if guard.Kind != document.Scalar || !slices.Contains(rule.Equals, guard.Raw) {
				continue
			}
		}
		if m.Node.Child(rule.Requires) != nil {
			continue
		}
		detail := fmt.Sprintf("%s is required alongside %s", rule.Requires, rule.Field)
		if len(rule.Equals) > 0 {
			detail = fmt.Sprintf("%s %q requires %s", rule.Field, guard.Raw, rule.Requires)
		}
		out = append(out, SchemaError{Meta: ValidationErrorMetadata{
			Code:   rule.Code,
			Path:   m.Path + "/" + document.EscapeToken(rule.Requires),
			Title:  rule.Title,
			Detail: detail,
		}})
	}
	return out
}

func evalReference(root *document.Node, rule Rule) []ValidationError {
	scope := root.Resolve(rule.Scope)
	if scope == nil || scope.Kind != document.Mapping {
		return nil
	}
	defined := make(map[string]bool, len(scope.Pairs))
	for _, p := range scope.Pairs {
		defined[p.Key] = true
	}

	var out []ValidationError
	check := func(path string, n *document.Node) {
		if n.Kind != document.Scalar || defined[n.Raw] {
			return
		}
		out = append(out, SchemaError{Meta: ValidationErrorMetadata{
			Code:   rule.Code,
			Path:   path,
			Title:  rule.Title,
			Detail: fmt.Sprintf("%q does not name a job defined in %s", n.Raw, rule.Scope),
		}})
	}
	for _, m := range root.Find(rule.Path) {
		switch m.Node.Kind {
		case document.Scalar:
			check(m.Path, m.Node)
		case document.Sequence:
			for i, it := range m.Node.Items {
				check(m.Path+"/"+strconv.Itoa(i), it)
			}
		}
	}
	return out
}

func evalGlob(root *document.Node, rule Rule) []ValidationError {
	var out []ValidationError
	for _, m := range root.Find(rule.Path) {
		if m.Node.Kind != document.Sequence {
			continue
		}
		for i, it := range m.Node.Items {
			if it.Kind != document.Scalar {
				continue
			}
			pat, ok := it.Value.(string)
			if !ok {
				pat = it.Raw
			}
			if doublestar.ValidatePattern(pat) {
				continue
			}
			out = append(out, SchemaError{Meta: ValidationErrorMetadata{
				Code:   rule.Code,
				Path:   m.Path + "/" + strconv.Itoa(i),
				Title:  rule.Title,
				Detail: fmt.Sprintf("%q is not a valid glob pattern", pat),
			}})
		}
	}
	return out
}

func evalCron(root *document.Node, rule Rule) []ValidationError {
	var out []ValidationError
	for _, m := range root.Find(rule.Path) {
		if m.Node.Kind != document.Scalar {
			continue
		}
		expr, ok := m.Node.Value.(string)
		if !ok {
			expr = m.Node.Raw
		}
		if _, err := cron.ParseStandard(expr); err != nil {
			out = append(out, SchemaError{Meta: ValidationErrorMetadata{
				Code:   rule.Code,
				Path:   m.Path,
				Title:  rule.Title,
				Detail: fmt.Sprintf("%q: %v", expr, err),
			}})
		}
	}
	return out
}

// evalEmbedded validates a sub-document in place against another kind.
// The sub-document's own errors, with paths relative to its root, ride
// along as a nested state.
func (r *Registry) evalEmbedded(root *document.Node, rule Rule) []ValidationError {
	var out []ValidationError
	for _, m := range root.Find(rule.Path) {
		if m.Node.Kind != document.Mapping {
			continue
		}
		errs := r.Validate(m.Node, rule.Kind)
		if len(errs) == 0 {
			continue
		}
		out = append(out, SchemaError{
			Meta: ValidationErrorMetadata{
				Code:   rule.Code,
				Path:   m.Path,
				Title:  rule.Title,
				Detail: fmt.Sprintf("embedded action failed validation with %d error(s)", len(errs)),
			},
			States: []NestedState{{Errors: errs}},
		})
	}
	return out
}
