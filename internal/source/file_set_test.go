package source

import (
	"testing"
)

func TestAddVirtualNormalizes(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.isl", []byte("\xEF\xBB\xBFdomain A\r\nversion: \"1\"\r\n"))
	f := fs.Get(id)
	if string(f.Content) != "domain A\nversion: \"1\"\n" {
		t.Fatalf("normalized content = %q", f.Content)
	}
	if f.Flags&FileVirtual == 0 {
		t.Fatal("expected FileVirtual flag")
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("b.isl", []byte("one\ntwo\nthree"))
	tests := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{2, 1, 3},
		{4, 2, 1},
		{6, 2, 3},
		{8, 3, 1},
		{12, 3, 5},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start.Line != tt.line || start.Col != tt.col {
			t.Errorf("Resolve(%d) = %d:%d, want %d:%d", tt.off, start.Line, start.Col, tt.line, tt.col)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("c.isl", []byte("alpha\nbeta\ngamma\n"))
	f := fs.Get(id)
	if got := f.GetLine(2); got != "beta" {
		t.Errorf("GetLine(2) = %q, want %q", got, "beta")
	}
	if got := f.GetLine(0); got != "" {
		t.Errorf("GetLine(0) = %q, want empty", got)
	}
	if got := f.GetLine(9); got != "" {
		t.Errorf("GetLine(9) = %q, want empty", got)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 5, End: 10}
	b := Span{File: 1, Start: 2, End: 7}
	c := a.Cover(b)
	if c.Start != 2 || c.End != 10 {
		t.Errorf("Cover = %v", c)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("cross-file Cover must be identity, got %v", got)
	}
}
