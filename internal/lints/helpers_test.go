package lints

import (
	"github.com/cairoverse/clin/syntax"
)

// Tree-building helpers shared by the rule tests. Spans are coarse;
// only the nodes a test asserts on carry meaningful positions.

func sp(startLine, startCol, endLine, endCol int) syntax.Span {
	return syntax.Span{
		Start: syntax.Position{Filename: "test.cairo", Line: startLine, Column: startCol},
		End:   syntax.Position{Filename: "test.cairo", Line: endLine, Column: endCol},
	}
}

func wildcard() *syntax.Node {
	return syntax.NewNode(syntax.PatternWildcard, "_", sp(3, 9, 3, 10))
}

// enumPat builds `Shape::Circle(...)`. A nil inner models a unit or
// absent payload, which renders as empty text.
func enumPat(text string, inner *syntax.Node) *syntax.Node {
	path := syntax.NewNode(syntax.ExprPath, "Shape::Circle", sp(2, 9, 2, 22))
	if inner == nil {
		return syntax.NewNode(syntax.PatternEnum, text, sp(2, 9, 2, 9+len(text)), path)
	}
	return syntax.NewNode(syntax.PatternEnum, text, sp(2, 9, 2, 9+len(text)), path, inner)
}

func identPat(name string) *syntax.Node {
	return syntax.NewNode(syntax.PatternIdentifier, name, sp(2, 23, 2, 23+len(name)))
}

func structPat(text string) *syntax.Node {
	return syntax.NewNode(syntax.PatternStruct, text, sp(2, 9, 2, 9+len(text)))
}

func emptyBlock() *syntax.Node {
	return syntax.NewNode(syntax.ExprBlock, "{}", sp(3, 14, 3, 16))
}

func unitTuple() *syntax.Node {
	return syntax.NewNode(syntax.ExprTuple, "()", sp(3, 14, 3, 16))
}

// blockOf wraps expressions into a block, one statement each.
func blockOf(exprs ...*syntax.Node) *syntax.Node {
	stmts := make([]*syntax.Node, len(exprs))
	for i, e := range exprs {
		stmts[i] = syntax.NewNode(syntax.StatementExpr, e.Text(), e.Span(), e)
	}
	return syntax.NewNode(syntax.ExprBlock, "{ ... }", sp(3, 14, 3, 21), stmts...)
}

func arm(pattern, body *syntax.Node) *syntax.Node {
	return syntax.NewNode(syntax.MatchArm, pattern.Text()+" => "+body.Text(),
		pattern.Span(), pattern, body)
}

func matchExpr(arms ...*syntax.Node) *syntax.Node {
	return syntax.NewNode(syntax.ExprMatch, "match shape { ... }", sp(2, 5, 5, 6), arms...)
}

// fnBody wraps expressions into the block of a function body, the
// subtree the detectors receive.
func fnBody(exprs ...*syntax.Node) *syntax.Node {
	stmts := make([]*syntax.Node, len(exprs))
	for i, e := range exprs {
		stmts[i] = syntax.NewNode(syntax.StatementExpr, e.Text(), e.Span(), e)
	}
	return syntax.NewNode(syntax.ExprBlock, "{ ... }", sp(1, 40, 6, 2), stmts...)
}

// letStmt builds `let <pattern> = <text>;` holding a pattern, the way
// a frontend dumps a let binding.
func letStmt(pattern *syntax.Node) *syntax.Node {
	return syntax.NewNode(syntax.StatementLet, "let "+pattern.Text()+" = shape;",
		pattern.Span(), pattern)
}
