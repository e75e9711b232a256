package syntax

// Typed views wrap a raw *Node with accessors for the children that
// matter to a rule. They are cheap value types carrying a single
// pointer; constructing one never copies the tree. Each As* helper
// checks the node's kind and reports false on a mismatch, mirroring a
// type assertion.

// MatchExpr is a view over an ExprMatch node.
type MatchExpr struct{ node *Node }

// AsMatchExpr views n as a match expression.
func AsMatchExpr(n *Node) (MatchExpr, bool) {
	if n.Kind() != ExprMatch {
		return MatchExpr{}, false
	}
	return MatchExpr{node: n}, true
}

// Node returns the underlying node.
func (m MatchExpr) Node() *Node { return m.node }

// Arms returns the match's arms in source order.
func (m MatchExpr) Arms() []Arm {
	raw := m.node.childrenOfKind(MatchArm)
	arms := make([]Arm, len(raw))
	for i, n := range raw {
		arms[i] = Arm{node: n}
	}
	return arms
}

// Arm is a view over a MatchArm node. An arm holds a pattern and a
// body; anything else the frontend attaches (guards, commas) is
// ignored here.
type Arm struct{ node *Node }

// AsArm views n as a match arm.
func AsArm(n *Node) (Arm, bool) {
	if n.Kind() != MatchArm {
		return Arm{}, false
	}
	return Arm{node: n}, true
}

// Node returns the underlying node.
func (a Arm) Node() *Node { return a.node }

// Pattern returns the arm's pattern, the first pattern-kind child. It
// is nil when the frontend emitted a malformed arm.
func (a Arm) Pattern() *Node {
	for _, c := range a.node.Children() {
		if c.Kind().IsPattern() {
			return c
		}
	}
	return nil
}

// Body returns the arm's body expression: a block, a tuple, or any
// other expression node. Nil when the arm has no expression child.
func (a Arm) Body() *Node {
	for _, c := range a.node.Children() {
		if c.Kind().IsExpr() {
			return c
		}
	}
	return nil
}

// EnumPattern is a view over a PatternEnum node, e.g.
// `Shape::Circle(radius)`.
type EnumPattern struct{ node *Node }

// AsEnumPattern views n as an enum variant pattern.
func AsEnumPattern(n *Node) (EnumPattern, bool) {
	if n.Kind() != PatternEnum {
		return EnumPattern{}, false
	}
	return EnumPattern{node: n}, true
}

// Node returns the underlying node.
func (p EnumPattern) Node() *Node { return p.node }

// Path returns the variant path child (`Shape::Circle`), or nil when
// the frontend did not attach one.
func (p EnumPattern) Path() *Node { return p.node.firstChildOfKind(ExprPath) }

// Inner returns the sub-pattern inside the variant's parentheses, or
// nil for a unit variant. Frontends render a unit payload as an absent
// or empty inner pattern, so nil-safe Text() on the result reads "".
func (p EnumPattern) Inner() *Node {
	for _, c := range p.node.Children() {
		if c.Kind().IsPattern() {
			return c
		}
	}
	return nil
}

// StructPattern is a view over a PatternStruct node, e.g.
// `Point { x, y }`. Whether the pattern binds anything is judged from
// its own text; there is no per-field accessor.
type StructPattern struct{ node *Node }

// AsStructPattern views n as a struct pattern.
func AsStructPattern(n *Node) (StructPattern, bool) {
	if n.Kind() != PatternStruct {
		return StructPattern{}, false
	}
	return StructPattern{node: n}, true
}

// Node returns the underlying node.
func (p StructPattern) Node() *Node { return p.node }

// Block is a view over an ExprBlock node.
type Block struct{ node *Node }

// AsBlock views n as a block expression.
func AsBlock(n *Node) (Block, bool) {
	if n.Kind() != ExprBlock {
		return Block{}, false
	}
	return Block{node: n}, true
}

// Node returns the underlying node.
func (b Block) Node() *Node { return b.node }

// Statements returns the block's statements in source order.
func (b Block) Statements() []*Node {
	var out []*Node
	for _, c := range b.node.Children() {
		if c.Kind().IsStatement() {
			out = append(out, c)
		}
	}
	return out
}

// ExprStatement is a view over a StatementExpr node, a bare expression
// used as a statement.
type ExprStatement struct{ node *Node }

// AsExprStatement views n as an expression statement.
func AsExprStatement(n *Node) (ExprStatement, bool) {
	if n.Kind() != StatementExpr {
		return ExprStatement{}, false
	}
	return ExprStatement{node: n}, true
}

// Node returns the underlying node.
func (s ExprStatement) Node() *Node { return s.node }

// Expr returns the wrapped expression, or nil when absent.
func (s ExprStatement) Expr() *Node {
	for _, c := range s.node.Children() {
		if c.Kind().IsExpr() {
			return c
		}
	}
	return nil
}

// TupleExpr is a view over an ExprTuple node. `()` is the zero-element
// tuple, the unit value.
type TupleExpr struct{ node *Node }

// AsTupleExpr views n as a tuple expression.
func AsTupleExpr(n *Node) (TupleExpr, bool) {
	if n.Kind() != ExprTuple {
		return TupleExpr{}, false
	}
	return TupleExpr{node: n}, true
}

// Node returns the underlying node.
func (t TupleExpr) Node() *Node { return t.node }

// Elements returns the tuple's element nodes. Every direct child
// counts as an element, including kinds this package does not model.
func (t TupleExpr) Elements() []*Node { return t.node.Children() }
