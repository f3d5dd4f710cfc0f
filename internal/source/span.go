package source

import "fmt"

// Span is a half-open byte range [Start, End) inside one file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Contains reports whether off lies inside the span. The end offset counts as
// inside so that a caret placed right after an identifier still selects it.
func (s Span) Contains(off uint32) bool {
	return off >= s.Start && off <= s.End
}

// Encloses reports whether other is fully inside s.
func (s Span) Encloses(other Span) bool {
	return s.File == other.File && other.Start >= s.Start && other.End <= s.End
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
