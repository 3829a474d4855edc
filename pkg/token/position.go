package token

// Position represents a location in the source code.
type Position struct {
	Line   int // 1-based line number
	Column int // 0-based column offset within the line
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Span represents a range in source code.
type Span struct {
	Start Position
	End   Position
}

// IsValid returns true if both start and end positions are valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}

// Union combines two spans, taking the start of begin and the end of end.
func Union(begin, end Span) Span {
	return Span{Start: begin.Start, End: end.End}
}
