package lints

import (
	tt "github.com/cairoverse/clin/internal/types"
)

// Canonical diagnostic messages. Editor integrations match on these
// strings, so they are part of the tool's contract: change one and
// every downstream consumer stops recognizing the diagnostic.
const (
	MessageDestructuringMatch  = "you seem to be trying to use `match` for destructuring a single pattern. Consider using `if let`"
	MessageMatchForEquality    = "you seem to be trying to use `match` for an equality check. Consider using `if`"
	MessageRedundantEnumParens = "This enum variant has redundant parentheses and can be simplified."
)

// ClassifyMessage maps a diagnostic message back to the kind of lint
// that produced it. The mapping is total: any text that is not one of
// the canonical messages classifies as LintUnknown, never an error.
// This is the reverse channel for consumers that only see rendered
// diagnostics, such as editor plugins reading compiler output.
func ClassifyMessage(message string) tt.LintKind {
	switch message {
	case MessageDestructuringMatch:
		return tt.LintDestructuringMatch
	case MessageMatchForEquality:
		return tt.LintMatchForEquality
	case MessageRedundantEnumParens:
		return tt.LintRedundantEnumParens
	}
	return tt.LintUnknown
}
