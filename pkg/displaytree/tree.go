package displaytree

import (
	"bytes"
	"encoding/json"
)

// DisplayTree is the tree value supplied by the host.
type DisplayTree struct {
	Node Node `json:"node"`
}

// Node is the single variant of a DisplayTree.
type Node struct {
	// Label is the display text. Nil means the host supplied no label.
	Label *string `json:"label,omitempty"`

	// Children in left-to-right draw order. A leaf has a non-nil empty slice;
	// nil marks a children value that was not an ordered sequence.
	Children []DisplayTree `json:"children"`
}

// Leaf returns a node without children.
func Leaf(label string) DisplayTree {
	return Branch(label)
}

// Branch returns a node with the given children in order.
func Branch(label string, children ...DisplayTree) DisplayTree {
	if children == nil {
		children = []DisplayTree{}
	}
	return DisplayTree{Node: Node{Label: &label, Children: children}}
}

// Unlabeled returns a node with no label.
func Unlabeled(children ...DisplayTree) DisplayTree {
	t := Branch("", children...)
	t.Node.Label = nil
	return t
}

// UnmarshalJSON decodes a node, tolerating a children value that is not an
// array so that Convert can report it as a malformed tree.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw struct {
		Label    *string         `json:"label"`
		Children json.RawMessage `json:"children"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	n.Label = raw.Label
	n.Children = nil
	if !isArray(raw.Children) {
		return nil
	}

	children := []DisplayTree{}
	if err := json.Unmarshal(raw.Children, &children); err != nil {
		return err
	}
	if children == nil {
		children = []DisplayTree{}
	}
	n.Children = children
	return nil
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// Datum is one node of the graph handed to the layout engine.
type Datum struct {
	// Name is always NodeName; the engine schema requires the field.
	Name string `json:"name"`

	// Label is carried through unchanged from the source node.
	Label *string `json:"label,omitempty"`

	// Children is nil for leaves so that the key is absent when encoded.
	Children []Datum `json:"children,omitempty"`
}

// NodeName is the fixed discriminant every datum carries.
const NodeName = "node"

// Text returns the label, or the empty string when the label is absent.
func (d Datum) Text() string {
	if d.Label == nil {
		return ""
	}
	return *d.Label
}

// IsLeaf reports whether d has no children key.
func (d Datum) IsLeaf() bool {
	return d.Children == nil
}

// Count returns the number of nodes in the subtree rooted at d.
func (d Datum) Count() int {
	n := 1
	for _, c := range d.Children {
		n += c.Count()
	}
	return n
}

// Depth returns the number of levels in the subtree rooted at d.
func (d Datum) Depth() int {
	deepest := 0
	for _, c := range d.Children {
		deepest = max(deepest, c.Depth())
	}
	return deepest + 1
}

// Walk visits d and its descendants in pre-order. The parent of the root is -1;
// every other node receives the pre-order index of its parent.
func (d *Datum) Walk(fn func(index, parent int, n *Datum)) {
	next := 0
	var visit func(n *Datum, parent int)
	visit = func(n *Datum, parent int) {
		idx := next
		next++
		fn(idx, parent, n)
		for i := range n.Children {
			visit(&n.Children[i], idx)
		}
	}
	visit(d, -1)
}
