package syntax

import "fmt"

// Position is a point in a source file. Line and Column are 1-based,
// Offset is a 0-based byte offset. A zero Position is unknown.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// IsValid reports whether the position carries real line information.
func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	s := p.Filename
	if p.IsValid() {
		if s != "" {
			s += ":"
		}
		s += fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	if s == "" {
		s = "-"
	}
	return s
}

// Span is the half-open source range [Start, End) covered by a node.
// Spans come from the frontend dump and are never recomputed here; the
// linter reads trees, it does not re-lex source.
type Span struct {
	Start Position
	End   Position
}

func (s Span) String() string { return s.Start.String() }
