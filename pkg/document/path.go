package document

import (
	"strconv"
	"strings"
)

// EscapeToken escapes a single JSON Pointer reference token (RFC 6901).
func EscapeToken(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

// UnescapeToken reverses EscapeToken.
func UnescapeToken(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}

// Match pairs a concrete pointer with the node it addresses.
type Match struct {
	Path string
	Node *Node
}

// Resolve walks a JSON Pointer and returns the addressed node, or nil
// when any segment is absent. The empty pointer addresses the root.
func (d *Document) Resolve(pointer string) *Node {
	return d.Root.Resolve(pointer)
}

// Resolve walks a JSON Pointer relative to this node.
func (n *Node) Resolve(pointer string) *Node {
	if pointer == "" {
		return n
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil
	}
	cur := n
	for _, tok := range strings.Split(pointer[1:], "/") {
		cur = cur.step(UnescapeToken(tok))
		if cur == nil {
			return nil
		}
	}
	return cur
}

func (n *Node) step(tok string) *Node {
	switch n.Kind {
	case Mapping:
		return n.Child(tok)
	case Sequence:
		i, err := strconv.Atoi(tok)
		if err != nil {
			return nil
		}
		return n.Item(i)
	default:
		return nil
	}
}

// Find returns every node matched by a pointer pattern, in document
// order. A "*" segment matches every key of a mapping or every index of
// a sequence. Absent paths simply yield no matches.
func (d *Document) Find(pattern string) []Match {
	return d.Root.Find(pattern)
}

// Find resolves a pointer pattern relative to this node.
func (n *Node) Find(pattern string) []Match {
	if pattern == "" {
		return []Match{{Path: "", Node: n}}
	}
	if !strings.HasPrefix(pattern, "/") {
		return nil
	}
	var out []Match
	find(n, "", strings.Split(pattern[1:], "/"), &out)
	return out
}

func find(n *Node, prefix string, toks []string, out *[]Match) {
	if len(toks) == 0 {
		*out = append(*out, Match{Path: prefix, Node: n})
		return
	}
	tok, rest := toks[0], toks[1:]
	if tok == "*" {
		switch n.Kind {
		case Mapping:
			for _, p := range n.Pairs {
				find(p.Value, prefix+"/"+EscapeToken(p.Key), rest, out)
			}
		case Sequence:
			for i, it := range n.Items {
				find(it, prefix+"/"+strconv.Itoa(i), rest, out)
			}
		}
		return
	}
	if next := n.step(UnescapeToken(tok)); next != nil {
		find(next, prefix+"/"+tok, rest, out)
	}
}

// Locate returns the source location of the node at pointer.
func (d *Document) Locate(pointer string) (Location, bool) {
	n := d.Resolve(pointer)
	if n == nil {
		return Location{}, false
	}
	return n.Loc, true
}
