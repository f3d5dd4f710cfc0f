package source

import "testing"

func TestFileLineColRoundTrip(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.cs", []byte("class C\n{\n    int P => 10;\n}\n"))
	f := fs.Get(id)

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{6, LineCol{1, 7}},
		{8, LineCol{2, 1}},
		{14, LineCol{3, 5}},
	}
	for _, tt := range tests {
		got := f.LineCol(tt.off)
		if got != tt.want {
			t.Fatalf("LineCol(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
		back, ok := f.Offset(got)
		if !ok || back != tt.off {
			t.Fatalf("Offset(%+v) = %d,%v, want %d", got, back, ok, tt.off)
		}
	}
	if line := f.GetLine(3); line != "    int P => 10;" {
		t.Fatalf("GetLine(3) = %q", line)
	}
}

func TestSpanContainsAndCover(t *testing.T) {
	s := Span{File: 1, Start: 10, End: 20}
	if !s.Contains(10) || !s.Contains(20) || s.Contains(21) {
		t.Fatalf("unexpected Contains results for %v", s)
	}
	c := s.Cover(Span{File: 1, Start: 5, End: 12})
	if c.Start != 5 || c.End != 20 {
		t.Fatalf("Cover = %v", c)
	}
	if other := s.Cover(Span{File: 2, Start: 0, End: 100}); other != s {
		t.Fatalf("cover across files must be a no-op, got %v", other)
	}
}

func TestInternerFindDoesNotInsert(t *testing.T) {
	in := NewInterner()
	if _, ok := in.Find("P"); ok {
		t.Fatalf("Find must not report unknown strings")
	}
	id := in.Intern("P")
	if got, ok := in.Find("P"); !ok || got != id {
		t.Fatalf("Find = %d,%v want %d", got, ok, id)
	}
	if in.Len() != 2 {
		t.Fatalf("Len = %d, want 2", in.Len())
	}
}
