package syntax

// Node is one vertex of a parsed syntax tree. Nodes are immutable
// after construction: rules walk them, compare their text, and report
// positions, but never rewrite them. All methods are safe on a nil
// receiver and return zero values, so optional children (an absent
// enum sub-pattern, say) read as empty rather than panicking.
type Node struct {
	kind     Kind
	text     string
	span     Span
	children []*Node
}

// NewNode builds an immutable node. The children slice is copied, so
// the caller may reuse its backing array afterwards.
func NewNode(kind Kind, text string, span Span, children ...*Node) *Node {
	n := &Node{kind: kind, text: text, span: span}
	if len(children) > 0 {
		n.children = make([]*Node, len(children))
		copy(n.children, children)
	}
	return n
}

// Kind returns the node's structural kind.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindUnknown
	}
	return n.kind
}

// Text returns the node's source text exactly as the frontend rendered
// it, including any interior whitespace. Text is the only view of the
// source a rule gets; the linter never re-reads source files.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return n.text
}

// Span returns the source range the node covers.
func (n *Node) Span() Span {
	if n == nil {
		return Span{}
	}
	return n.span
}

// Children returns the node's direct children in source order. The
// returned slice is shared and must not be modified.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.children
}

// Descendants returns every node below n in preorder, excluding n
// itself. The traversal order is deterministic: a child's subtree is
// emitted in full before its next sibling.
func (n *Node) Descendants() []*Node {
	if n == nil || len(n.children) == 0 {
		return nil
	}
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		for _, c := range cur.children {
			out = append(out, c)
			walk(c)
		}
	}
	walk(n)
	return out
}

// firstChildOfKind returns the first direct child with the given kind,
// or nil when there is none.
func (n *Node) firstChildOfKind(k Kind) *Node {
	for _, c := range n.Children() {
		if c.Kind() == k {
			return c
		}
	}
	return nil
}

// childrenOfKind returns the direct children with the given kind, in
// source order.
func (n *Node) childrenOfKind(k Kind) []*Node {
	var out []*Node
	for _, c := range n.Children() {
		if c.Kind() == k {
			out = append(out, c)
		}
	}
	return out
}
