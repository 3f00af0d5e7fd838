// Package document parses YAML source text into a position-aware tree.
// Every node remembers where it came from, so validation errors can be
// translated back to an exact spot in the original source.
package document

import (
	"encoding/json"
	"math"
	"strconv"
)

// Kind discriminates the three node shapes of a parsed document.
type Kind int

const (
	Mapping Kind = iota
	Sequence
	Scalar
)

func (k Kind) String() string {
	switch k {
	case Mapping:
		return "mapping"
	case Sequence:
		return "sequence"
	default:
		return "scalar"
	}
}

// Location is a position in the original source text. Index is a 0-based
// rune offset; Line and Column are 1-based.
type Location struct {
	Index  int `json:"index"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Node is one element of the parsed document tree.
type Node struct {
	Kind  Kind
	Tag   string // resolved YAML tag, e.g. "!!str"
	Value any    // decoded scalar value; nil for mappings and sequences
	Raw   string // scalar source text
	Pairs []Pair // mapping entries, in document order
	Items []*Node
	Loc   Location
}

// Pair is a single mapping entry. Keys are kept as their source text,
// so keys like "on" never collapse into booleans.
type Pair struct {
	Key    string
	KeyLoc Location
	Value  *Node
}

// Document is a successfully parsed source text.
type Document struct {
	Root *Node
	src  string
}

// Source returns the original text the document was parsed from.
func (d *Document) Source() string { return d.src }

// Child returns the value for key in a mapping node, or nil.
func (n *Node) Child(key string) *Node {
	if n == nil || n.Kind != Mapping {
		return nil
	}
	for _, p := range n.Pairs {
		if p.Key == key {
			return p.Value
		}
	}
	return nil
}

// Item returns the i-th element of a sequence node, or nil.
func (n *Node) Item(i int) *Node {
	if n == nil || n.Kind != Sequence || i < 0 || i >= len(n.Items) {
		return nil
	}
	return n.Items[i]
}

// String returns the scalar value as text, or "" for non-scalars.
func (n *Node) String() string {
	if n == nil || n.Kind != Scalar {
		return ""
	}
	return n.Raw
}

// JSONValue converts the subtree into a JSON-compatible value suitable
// for schema validation. Numbers become json.Number so no precision is
// lost in transit.
func (n *Node) JSONValue() any {
	switch n.Kind {
	case Mapping:
		m := make(map[string]any, len(n.Pairs))
		for _, p := range n.Pairs {
			m[p.Key] = p.Value.JSONValue()
		}
		return m
	case Sequence:
		s := make([]any, len(n.Items))
		for i, it := range n.Items {
			s[i] = it.JSONValue()
		}
		return s
	default:
		switch v := n.Value.(type) {
		case int:
			return json.Number(strconv.Itoa(v))
		case int64:
			return json.Number(strconv.FormatInt(v, 10))
		case uint64:
			return json.Number(strconv.FormatUint(v, 10))
		case float64:
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return v
			}
			return json.Number(strconv.FormatFloat(v, 'g', -1, 64))
		default:
			return n.Value
		}
	}
}
