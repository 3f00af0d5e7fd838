package document

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseError describes why source text could not be turned into a
// document tree. A parse failure is always fatal to the whole document.
type ParseError struct {
	Code     string    `json:"code"`
	Title    string    `json:"title"`
	Detail   string    `json:"detail"`
	Location *Location `json:"location,omitempty"`
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Detail)
}

// Parse error codes.
const (
	CodeEmptySource     = "empty-source"
	CodeParseError      = "parse-error"
	CodeInvalidDocument = "invalid-document"
)

var errLineRe = regexp.MustCompile(`line (\d+)`)

// Parse turns source text into a Document, or reports the first
// unrecoverable syntax problem. There is no multi-error recovery for
// syntax: the first failure wins.
func Parse(src string) (*Document, *ParseError) {
	if strings.TrimSpace(src) == "" {
		return nil, emptySource()
	}

	offs := lineOffsets(src)

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(src), &root); err != nil {
		return nil, syntaxError(err, offs)
	}

	body := documentBody(&root)
	if body == nil || body.Tag == "!!null" {
		return nil, emptySource()
	}

	b := &builder{offs: offs, aliases: make(map[*yaml.Node]bool)}
	node, perr := b.build(body)
	if perr != nil {
		return nil, perr
	}

	if node.Kind != Mapping {
		return nil, &ParseError{
			Code:     CodeInvalidDocument,
			Title:    "Invalid document",
			Detail:   fmt.Sprintf("top-level value must be a mapping, got %s", node.Kind),
			Location: &node.Loc,
		}
	}

	return &Document{Root: node, src: src}, nil
}

func emptySource() *ParseError {
	return &ParseError{
		Code:     CodeEmptySource,
		Title:    "Source is empty",
		Detail:   "the document contains no content",
		Location: &Location{Index: 0, Line: 1, Column: 1},
	}
}

// syntaxError maps a yaml.v3 error to a ParseError, extracting the line
// number from the error text when one is present. The column is pinned
// to the start of the offending line: yaml.v3 does not expose a finer
// position for syntax failures.
func syntaxError(err error, offs []int) *ParseError {
	detail := strings.TrimPrefix(err.Error(), "yaml: ")
	pe := &ParseError{
		Code:   CodeParseError,
		Title:  "Parse error",
		Detail: detail,
	}
	if m := errLineRe.FindStringSubmatch(detail); m != nil {
		line, _ := strconv.Atoi(m[1])
		if line >= 1 {
			pe.Location = &Location{
				Index:  indexAt(offs, line, 1),
				Line:   line,
				Column: 1,
			}
		}
	}
	return pe
}

// documentBody unwraps the document node yaml.v3 places at the root.
func documentBody(root *yaml.Node) *yaml.Node {
	switch root.Kind {
	case 0:
		return nil
	case yaml.DocumentNode:
		if len(root.Content) == 0 {
			return nil
		}
		return root.Content[0]
	default:
		return root
	}
}

type builder struct {
	offs    []int
	aliases map[*yaml.Node]bool
}

func (b *builder) build(n *yaml.Node) (*Node, *ParseError) {
	switch n.Kind {
	case yaml.AliasNode:
		if b.aliases[n.Alias] {
			return nil, &ParseError{
				Code:     CodeParseError,
				Title:    "Parse error",
				Detail:   fmt.Sprintf("alias *%s expands through itself", n.Value),
				Location: loc(b.offs, n),
			}
		}
		b.aliases[n.Alias] = true
		out, perr := b.build(n.Alias)
		delete(b.aliases, n.Alias)
		if perr != nil {
			return nil, perr
		}
		// Report the alias use site, not the anchor definition.
		out.Loc = *loc(b.offs, n)
		return out, nil

	case yaml.MappingNode:
		out := &Node{Kind: Mapping, Tag: n.Tag, Loc: *loc(b.offs, n)}
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			val, perr := b.build(v)
			if perr != nil {
				return nil, perr
			}
			out.Pairs = append(out.Pairs, Pair{
				Key:    k.Value,
				KeyLoc: *loc(b.offs, k),
				Value:  val,
			})
		}
		return out, nil

	case yaml.SequenceNode:
		out := &Node{Kind: Sequence, Tag: n.Tag, Loc: *loc(b.offs, n)}
		for _, c := range n.Content {
			item, perr := b.build(c)
			if perr != nil {
				return nil, perr
			}
			out.Items = append(out.Items, item)
		}
		return out, nil

	default:
		out := &Node{Kind: Scalar, Tag: n.Tag, Raw: n.Value, Loc: *loc(b.offs, n)}
		var v any
		if err := n.Decode(&v); err != nil {
			v = n.Value
		}
		out.Value = v
		return out, nil
	}
}

func loc(offs []int, n *yaml.Node) *Location {
	return &Location{
		Index:  indexAt(offs, n.Line, n.Column),
		Line:   n.Line,
		Column: n.Column,
	}
}

// lineOffsets returns the rune offset of the start of every line.
func lineOffsets(src string) []int {
	offs := []int{0}
	n := 0
	for _, r := range src {
		n++
		if r == '\n' {
			offs = append(offs, n)
		}
	}
	return offs
}

// indexAt converts a 1-based line/column pair into a 0-based rune offset.
func indexAt(offs []int, line, column int) int {
	if line < 1 {
		return 0
	}
	if line > len(offs) {
		line = len(offs)
	}
	return offs[line-1] + column - 1
}
