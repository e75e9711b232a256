package lints

import (
	"strings"

	tt "github.com/cairoverse/clin/internal/types"
	"github.com/cairoverse/clin/syntax"
)

// DetectRedundantEnumParens flags enum variant patterns written with
// an empty pair of parentheses, `Shape::Circle(())`, where the plain
// `Shape::Circle` means the same thing. The check is purely textual:
// an enum pattern whose source text contains `()` is reported, which
// also catches the parentheses hiding inside a longer pattern.
func DetectRedundantEnumParens(filename string, body *syntax.Node, severity tt.Severity) ([]tt.Diagnostic, error) {
	var diags []tt.Diagnostic

	nodes := append([]*syntax.Node{body}, body.Descendants()...)
	for _, node := range nodes {
		if node.Kind() != syntax.PatternEnum {
			continue
		}
		if !strings.Contains(node.Text(), "()") {
			continue
		}
		diags = append(diags, tt.Diagnostic{
			Rule:       "redundant-enum-parens",
			Kind:       tt.LintRedundantEnumParens,
			Category:   "style",
			Filename:   filename,
			Message:    MessageRedundantEnumParens,
			Suggestion: simplifiedPattern(node.Text()),
			Start:      node.Span().Start,
			End:        node.Span().End,
			Severity:   severity,
		})
	}

	return diags, nil
}

// simplifiedPattern strips trailing empty parentheses from a pattern,
// turning `Shape::Circle(())` or `Shape::Circle()` into `Shape::Circle`.
// Parentheses anywhere else cannot be removed mechanically, so the
// suggestion stays empty for those.
func simplifiedPattern(text string) string {
	simplified := text
	for {
		switch {
		case strings.HasSuffix(simplified, "(())"):
			simplified = strings.TrimSuffix(simplified, "(())")
		case strings.HasSuffix(simplified, "()"):
			simplified = strings.TrimSuffix(simplified, "()")
		default:
			if simplified == text {
				return ""
			}
			return simplified
		}
	}
}
