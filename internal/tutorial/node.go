package tutorial

import "slices"

// Kind tags which variant a Node holds
type Kind int

const (
	KindLeaf Kind = iota
	KindBranch
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindBranch:
		return "branch"
	default:
		return "unknown"
	}
}

// Node is either a leaf (plain text) or a branch (label plus ordered children).
// Nodes are immutable once built.
type Node struct {
	kind     Kind
	text     string
	label    string
	children []Node
}

// Leaf creates a terminal text node
func Leaf(text string) Node {
	return Node{kind: KindLeaf, text: text}
}

// Branch creates a labeled node holding the given children in order
func Branch(label string, children ...Node) Node {
	return Node{kind: KindBranch, label: label, children: slices.Clone(children)}
}

// Kind returns the variant tag
func (n Node) Kind() Kind {
	return n.kind
}

// Text returns the leaf text, empty for branches
func (n Node) Text() string {
	return n.text
}

// Label returns the branch label, empty for leaves
func (n Node) Label() string {
	return n.label
}

// Children returns a copy of the branch's children, nil for leaves
func (n Node) Children() []Node {
	return slices.Clone(n.children)
}

// IsBranch reports whether the node can be descended into
func (n Node) IsBranch() bool {
	return n.kind == KindBranch
}

// Title is the display string: the label for branches, the text for leaves
func (n Node) Title() string {
	if n.kind == KindBranch {
		return n.label
	}
	return n.text
}
