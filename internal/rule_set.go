package internal

import (
	"github.com/cairoverse/clin/internal/lints"
	tt "github.com/cairoverse/clin/internal/types"
	"github.com/cairoverse/clin/syntax"
)

/*
* Implement each lint rule as a separate struct
 */

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Check runs the lint rule on one function body and returns a
	// slice of Diagnostics.
	Check(filename string, body *syntax.Node) ([]tt.Diagnostic, error)

	// Name returns the name of the lint rule.
	Name() string

	// Triggers returns the node kinds that make the rule worth
	// running. A body containing none of them skips the rule; an
	// empty list means the rule always runs.
	Triggers() []syntax.Kind

	// Severity returns the severity diagnostics are reported with.
	Severity() tt.Severity

	// SetSeverity overrides the rule's configured severity.
	SetSeverity(severity tt.Severity)
}

// baseRule carries the severity plumbing shared by every rule.
type baseRule struct {
	severity tt.Severity
}

func (r *baseRule) Severity() tt.Severity            { return r.severity }
func (r *baseRule) SetSeverity(severity tt.Severity) { r.severity = severity }

// DestructuringMatchRule reports two-armed match expressions that are
// really a single-pattern destructuring or an equality check.
type DestructuringMatchRule struct {
	baseRule
}

func NewDestructuringMatchRule() LintRule {
	return &DestructuringMatchRule{baseRule{severity: tt.SeverityWarning}}
}

func (r *DestructuringMatchRule) Check(filename string, body *syntax.Node) ([]tt.Diagnostic, error) {
	return lints.DetectDestructuringMatch(filename, body, r.severity)
}

func (r *DestructuringMatchRule) Name() string {
	return "destructuring-match"
}

func (r *DestructuringMatchRule) Triggers() []syntax.Kind {
	return []syntax.Kind{syntax.ExprMatch}
}

// RedundantEnumParensRule reports enum variant patterns carrying an
// empty pair of parentheses.
type RedundantEnumParensRule struct {
	baseRule
}

func NewRedundantEnumParensRule() LintRule {
	return &RedundantEnumParensRule{baseRule{severity: tt.SeverityWarning}}
}

func (r *RedundantEnumParensRule) Check(filename string, body *syntax.Node) ([]tt.Diagnostic, error) {
	return lints.DetectRedundantEnumParens(filename, body, r.severity)
}

func (r *RedundantEnumParensRule) Name() string {
	return "redundant-enum-parens"
}

func (r *RedundantEnumParensRule) Triggers() []syntax.Kind {
	return []syntax.Kind{syntax.PatternEnum}
}
