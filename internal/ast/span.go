package ast

// SourceSpan locates a region of a source file. Offset and Length are
// byte based; Line and Column are 1-based.
type SourceSpan struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Offset   int    `json:"offset"`
	Length   int    `json:"length"`
	Language string `json:"language"`
}

const Language = "pup"

// SpanOf covers a node from its first byte to its end position.
func SpanOf(n Node) SourceSpan {
	return SpanBetween(n.NodePos(), n.NodeEndPos())
}

func SpanBetween(start, end Position) SourceSpan {
	length := end.Offset - start.Offset
	if length < 0 {
		length = 0
	}
	return SourceSpan{
		File:     start.Filename,
		Line:     start.Line,
		Column:   start.Column,
		Offset:   start.Offset,
		Length:   length,
		Language: Language,
	}
}

// End is the offset one past the last byte of the span.
func (s SourceSpan) End() int {
	return s.Offset + s.Length
}

// EndColumn assumes the span does not cross a line break.
func (s SourceSpan) EndColumn() int {
	return s.Column + s.Length
}

func (s SourceSpan) Contains(offset int) bool {
	return offset >= s.Offset && offset < s.End()
}

// Merge returns the smallest span covering both s and other. Spans of
// different files are not merged; s is returned unchanged.
func (s SourceSpan) Merge(other SourceSpan) SourceSpan {
	if s.File != other.File {
		return s
	}
	start := s
	if other.Offset < s.Offset {
		start = other
	}
	end := s.End()
	if other.End() > end {
		end = other.End()
	}
	start.Length = end - start.Offset
	return start
}
