package lints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cairoverse/clin/internal/types"
	"github.com/cairoverse/clin/syntax"
)

func TestDetectDestructuringMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     *syntax.Node
		expected int
		wantKind types.LintKind
	}{
		{
			name: "destructuring with empty wildcard block",
			// match shape { Shape::Circle(radius) => { radius }, _ => {} }
			body: fnBody(matchExpr(
				arm(enumPat("Shape::Circle(radius)", identPat("radius")), blockOf(unitTuple())),
				arm(wildcard(), emptyBlock()),
			)),
			expected: 1,
			wantKind: types.LintDestructuringMatch,
		},
		{
			name: "unit payload is an equality check",
			// match shape { Shape::Circle(()) => {}, _ => {} }
			body: fnBody(matchExpr(
				arm(enumPat("Shape::Circle(())", nil), emptyBlock()),
				arm(wildcard(), emptyBlock()),
			)),
			expected: 1,
			wantKind: types.LintMatchForEquality,
		},
		{
			name: "bare variant is an equality check",
			// match shape { Shape::Circle => {}, _ => () }
			body: fnBody(matchExpr(
				arm(enumPat("Shape::Circle", nil), emptyBlock()),
				arm(wildcard(), unitTuple()),
			)),
			expected: 1,
			wantKind: types.LintMatchForEquality,
		},
		{
			name: "identifier pattern is an equality check",
			body: fnBody(matchExpr(
				arm(identPat("other"), emptyBlock()),
				arm(wildcard(), emptyBlock()),
			)),
			expected: 1,
			wantKind: types.LintMatchForEquality,
		},
		{
			name: "struct pattern destructures",
			body: fnBody(matchExpr(
				arm(structPat("Point { x, y }"), emptyBlock()),
				arm(wildcard(), emptyBlock()),
			)),
			expected: 1,
			wantKind: types.LintDestructuringMatch,
		},
		{
			name: "arm order does not matter",
			body: fnBody(matchExpr(
				arm(wildcard(), emptyBlock()),
				arm(enumPat("Shape::Circle(radius)", identPat("radius")), emptyBlock()),
			)),
			expected: 1,
			wantKind: types.LintDestructuringMatch,
		},
		{
			name: "wildcard body is a block holding only unit",
			// _ => { () }
			body: fnBody(matchExpr(
				arm(enumPat("Shape::Circle(radius)", identPat("radius")), emptyBlock()),
				arm(wildcard(), blockOf(unitTuple())),
			)),
			expected: 1,
			wantKind: types.LintDestructuringMatch,
		},
		{
			name: "three arms are genuine dispatch",
			body: fnBody(matchExpr(
				arm(enumPat("Shape::Circle(radius)", identPat("radius")), emptyBlock()),
				arm(enumPat("Shape::Square(side)", identPat("side")), emptyBlock()),
				arm(wildcard(), emptyBlock()),
			)),
			expected: 0,
		},
		{
			name: "single arm",
			body: fnBody(matchExpr(
				arm(wildcard(), emptyBlock()),
			)),
			expected: 0,
		},
		{
			name: "wildcard arm does real work",
			// _ => { fallback() }
			body: fnBody(matchExpr(
				arm(enumPat("Shape::Circle(radius)", identPat("radius")), emptyBlock()),
				arm(wildcard(), blockOf(syntax.NewNode(syntax.ExprPath, "fallback()", sp(3, 14, 3, 24)))),
			)),
			expected: 0,
		},
		{
			name: "wildcard body is a non-empty tuple",
			body: fnBody(matchExpr(
				arm(enumPat("Shape::Circle(radius)", identPat("radius")), emptyBlock()),
				arm(wildcard(), syntax.NewNode(syntax.ExprTuple, "(0,)", sp(3, 14, 3, 18),
					syntax.NewNode(syntax.ExprLiteral, "0", sp(3, 15, 3, 16)))),
			)),
			expected: 0,
		},
		{
			name: "no wildcard arm",
			body: fnBody(matchExpr(
				arm(enumPat("Shape::Circle(radius)", identPat("radius")), emptyBlock()),
				arm(enumPat("Shape::Square(side)", identPat("side")), emptyBlock()),
			)),
			expected: 0,
		},
		{
			name:     "no match expression at all",
			body:     fnBody(unitTuple()),
			expected: 0,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			diags, err := DetectDestructuringMatch("test.cairo", tc.body, types.SeverityWarning)
			require.NoError(t, err)
			require.Len(t, diags, tc.expected)

			if tc.expected == 0 {
				return
			}
			d := diags[0]
			assert.Equal(t, "destructuring-match", d.Rule)
			assert.Equal(t, tc.wantKind, d.Kind)
			assert.Equal(t, types.SeverityWarning, d.Severity)
			assert.Equal(t, "test.cairo", d.Filename)
			if tc.wantKind == types.LintDestructuringMatch {
				assert.Equal(t, MessageDestructuringMatch, d.Message)
			} else {
				assert.Equal(t, MessageMatchForEquality, d.Message)
			}
		})
	}
}

func TestDetectDestructuringMatchLocation(t *testing.T) {
	t.Parallel()

	match := matchExpr(
		arm(enumPat("Shape::Circle(radius)", identPat("radius")), emptyBlock()),
		arm(wildcard(), emptyBlock()),
	)
	body := fnBody(match)

	diags, err := DetectDestructuringMatch("test.cairo", body, types.SeverityWarning)
	require.NoError(t, err)
	require.Len(t, diags, 1)

	// The diagnostic points at the match expression, not at an arm.
	assert.Equal(t, match.Span().Start, diags[0].Start)
	assert.Equal(t, match.Span().End, diags[0].End)
}

func TestDetectDestructuringMatchNested(t *testing.T) {
	t.Parallel()

	inner := matchExpr(
		arm(enumPat("Shape::Circle(radius)", identPat("radius")), emptyBlock()),
		arm(wildcard(), emptyBlock()),
	)
	// The outer match has three arms, so only the inner one fires.
	outer := syntax.NewNode(syntax.ExprMatch, "match shape { ... }", sp(1, 5, 9, 6),
		arm(enumPat("Shape::Circle(radius)", identPat("radius")), blockOf(inner)),
		arm(enumPat("Shape::Square(side)", identPat("side")), emptyBlock()),
		arm(wildcard(), emptyBlock()),
	)

	diags, err := DetectDestructuringMatch("test.cairo", fnBody(outer), types.SeverityWarning)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, inner.Span().Start, diags[0].Start)
}

func TestDetectDestructuringMatchOnBareMatchBody(t *testing.T) {
	t.Parallel()

	// The subtree handed to the detector is the match itself, with no
	// wrapping block.
	match := matchExpr(
		arm(enumPat("Shape::Circle(radius)", identPat("radius")), emptyBlock()),
		arm(wildcard(), emptyBlock()),
	)

	diags, err := DetectDestructuringMatch("test.cairo", match, types.SeverityWarning)
	require.NoError(t, err)
	assert.Len(t, diags, 1)
}

func TestDetectDestructuringMatchNilBody(t *testing.T) {
	t.Parallel()

	diags, err := DetectDestructuringMatch("test.cairo", nil, types.SeverityWarning)
	require.NoError(t, err)
	assert.Empty(t, diags)
}
