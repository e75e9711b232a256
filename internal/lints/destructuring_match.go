package lints

import (
	tt "github.com/cairoverse/clin/internal/types"
	"github.com/cairoverse/clin/syntax"
)

// DetectDestructuringMatch flags two-armed match expressions that do
// the job of a simpler conditional:
//
//	match shape {
//	    Shape::Circle(radius) => { do_something(radius); },
//	    _ => {},
//	}
//
// ->   if let Shape::Circle(radius) = shape { ... }
//
// A match is reported if and only if both of the following hold:
//
//  1. **One arm is a discarding wildcard**
//     `_ => {}`, `_ => { () }`, or `_ => ()`
//
//     - The arm's pattern must be the wildcard `_`.
//     - The arm's body must be empty: a block with no statements, a
//     block whose single statement is the unit value `()`, or the
//     unit value itself. Any other body means the wildcard arm does
//     real work and the match stays.
//
//  2. **The match has exactly two arms**
//     Three or more arms are genuine dispatch, zero or one arm is not
//     a match the frontend accepts, and neither is reported.
//
// The shape of the other arm's pattern then picks the message:
//
//   - An enum pattern that binds a payload (`Shape::Circle(radius)`) or
//     a struct pattern is a destructuring in disguise; `if let` says
//     that directly.
//
//   - A payload-free pattern (`Shape::Circle`, a literal, a path) makes
//     the match an equality test; a plain `if` says that directly.
//
// Both findings point at the match expression itself, not at an arm.
// Arm order does not matter.
func DetectDestructuringMatch(filename string, body *syntax.Node, severity tt.Severity) ([]tt.Diagnostic, error) {
	var diags []tt.Diagnostic

	nodes := append([]*syntax.Node{body}, body.Descendants()...)
	for _, node := range nodes {
		m, ok := syntax.AsMatchExpr(node)
		if !ok {
			continue
		}
		arms := m.Arms()
		if len(arms) != 2 {
			continue
		}

		var singleArmed, destructuring bool
		for _, arm := range arms {
			pat := arm.Pattern()
			switch pat.Kind() {
			case syntax.PatternWildcard:
				singleArmed = isEmptyArmBody(arm.Body()) || singleArmed
			case syntax.PatternEnum:
				// A unit payload renders as an absent inner pattern,
				// so its text reads empty and does not count as
				// destructuring.
				ep, _ := syntax.AsEnumPattern(pat)
				destructuring = ep.Inner().Text() != ""
			case syntax.PatternStruct:
				destructuring = pat.Text() != ""
			}
		}

		var message string
		var kind tt.LintKind
		switch {
		case singleArmed && destructuring:
			message = MessageDestructuringMatch
			kind = tt.LintDestructuringMatch
		case singleArmed:
			message = MessageMatchForEquality
			kind = tt.LintMatchForEquality
		default:
			continue
		}

		diags = append(diags, tt.Diagnostic{
			Rule:     "destructuring-match",
			Kind:     kind,
			Category: "style",
			Filename: filename,
			Message:  message,
			Start:    node.Span().Start,
			End:      node.Span().End,
			Severity: severity,
		})
	}

	return diags, nil
}

// isEmptyArmBody reports whether an arm body does nothing: an empty
// block, a block holding only the unit value, or the unit value
// itself.
func isEmptyArmBody(body *syntax.Node) bool {
	switch body.Kind() {
	case syntax.ExprBlock:
		block, _ := syntax.AsBlock(body)
		stmts := block.Statements()
		if len(stmts) == 0 {
			return true
		}
		if len(stmts) != 1 {
			return false
		}
		stmt, ok := syntax.AsExprStatement(stmts[0])
		if !ok {
			return false
		}
		tuple, ok := syntax.AsTupleExpr(stmt.Expr())
		return ok && len(tuple.Elements()) == 0
	case syntax.ExprTuple:
		tuple, _ := syntax.AsTupleExpr(body)
		return len(tuple.Elements()) == 0
	}
	return false
}
