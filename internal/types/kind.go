package types

// LintKind names the class of problem a diagnostic reports,
// independent of the rule that found it. Downstream tools (editor
// integrations, fix providers) dispatch on the kind, not on message
// text.
type LintKind int

const (
	LintUnknown LintKind = iota
	LintDestructuringMatch
	LintMatchForEquality
	LintRedundantEnumParens
)

func (k LintKind) String() string {
	switch k {
	case LintDestructuringMatch:
		return "DestructuringMatch"
	case LintMatchForEquality:
		return "MatchForEquality"
	case LintRedundantEnumParens:
		return "RedundantEnumParentheses"
	}
	return "Unknown"
}

// MarshalJSON renders the kind as its name rather than a number.
func (k LintKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}
