package grammar

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=NodeKind -trimprefix=Node -output=nodekind_string.go

// NodeKind tags parse tree nodes.
type NodeKind int

const (
	_ NodeKind = iota // zero value is invalid

	NodeLayer
	NodeSkeleton
	NodePeat
	NodeFineEarth
	NodeCarbonate
	NodeCode
	NodeAmplifier
	NodeDepth
	NodeDeeperThan
	NodeNumber
	NodeAlternate
)

// IsConstituent reports whether nodes of this kind describe one soil fraction.
func (k NodeKind) IsConstituent() bool {
	switch k {
	default:
		return false
	case NodeSkeleton, NodePeat, NodeFineEarth:
		return true
	}
}

// Node is one matched span of the input.
type Node struct {
	Kind     NodeKind
	Text     string
	Start    int
	End      int
	Children []*Node
}

// Child returns the first direct child of the given kind.
func (n *Node) Child(kind NodeKind) (*Node, bool) {
	for _, c := range n.Children {
		if c.Kind == kind {
			return c, true
		}
	}

	return nil, false
}

// ChildrenOf returns every direct child of the given kind.
func (n *Node) ChildrenOf(kind NodeKind) []*Node {
	var out []*Node

	for _, c := range n.Children {
		if c.Kind == kind {
			out = append(out, c)
		}
	}

	return out
}

// String renders the tree as an S-expression, e.g. (Layer (FineEarth (Code "ls"))).
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)

	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	b.WriteByte('(')
	b.WriteString(n.Kind.String())

	if len(n.Children) == 0 {
		fmt.Fprintf(b, " %q", n.Text)
	}

	for _, c := range n.Children {
		b.WriteByte(' ')
		c.write(b)
	}

	b.WriteByte(')')
}
