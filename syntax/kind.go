package syntax

// Kind tags a node with its structural role in the tree. The set is
// closed: frontends may only emit the kinds listed here, and dumps
// carrying anything else fall back to KindUnknown.
type Kind int

const (
	KindUnknown Kind = iota

	// Items.
	ItemFreeFunction
	ItemExternFunction

	// Expressions.
	ExprMatch
	ExprBlock
	ExprTuple
	ExprPath
	ExprLiteral

	// Match arms sit between the match expression and its patterns.
	MatchArm

	// Statements.
	StatementExpr
	StatementLet

	// Patterns.
	PatternWildcard
	PatternEnum
	PatternStruct
	PatternTuple
	PatternIdentifier
)

var kindNames = map[Kind]string{
	KindUnknown:        "Unknown",
	ItemFreeFunction:   "ItemFreeFunction",
	ItemExternFunction: "ItemExternFunction",
	ExprMatch:          "ExprMatch",
	ExprBlock:          "ExprBlock",
	ExprTuple:          "ExprTuple",
	ExprPath:           "ExprPath",
	ExprLiteral:        "ExprLiteral",
	MatchArm:           "MatchArm",
	StatementExpr:      "StatementExpr",
	StatementLet:       "StatementLet",
	PatternWildcard:    "PatternWildcard",
	PatternEnum:        "PatternEnum",
	PatternStruct:      "PatternStruct",
	PatternTuple:       "PatternTuple",
	PatternIdentifier:  "PatternIdentifier",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// KindFromString maps a dump's kind label back to a Kind. Labels that
// are not part of the closed set map to KindUnknown; they are carried
// through the tree but never dispatched to a rule.
func KindFromString(name string) Kind {
	if k, ok := kindsByName[name]; ok {
		return k
	}
	return KindUnknown
}

// IsItem reports whether k is a top-level module item kind.
func (k Kind) IsItem() bool {
	switch k {
	case ItemFreeFunction, ItemExternFunction:
		return true
	}
	return false
}

// IsExpr reports whether k is an expression kind. Blocks count as
// expressions: a match arm body is either a block or a bare expression.
func (k Kind) IsExpr() bool {
	switch k {
	case ExprMatch, ExprBlock, ExprTuple, ExprPath, ExprLiteral:
		return true
	}
	return false
}

// IsStatement reports whether k is a statement kind.
func (k Kind) IsStatement() bool {
	switch k {
	case StatementExpr, StatementLet:
		return true
	}
	return false
}

// IsPattern reports whether k is a pattern kind.
func (k Kind) IsPattern() bool {
	switch k {
	case PatternWildcard, PatternEnum, PatternStruct, PatternTuple, PatternIdentifier:
		return true
	}
	return false
}
