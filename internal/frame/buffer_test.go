package frame

import (
	"errors"
	"strings"
	"testing"
)

func newBuffer(t *testing.T, w, h int) *Buffer {
	t.Helper()
	b, err := New(w, h)
	if err != nil {
		t.Fatalf("New(%d, %d) error = %v", w, h, err)
	}
	return b
}

func TestNew(t *testing.T) {
	b := newBuffer(t, 120, 40)
	if b.Len() != 120*40 {
		t.Fatalf("Len() = %d, want %d", b.Len(), 120*40)
	}
	for i, r := range b.Cells() {
		if r != Blank {
			t.Fatalf("cell %d = %q, want blank", i, r)
		}
	}
	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		if _, err := New(size[0], size[1]); !errors.Is(err, ErrSize) {
			t.Errorf("New(%v) error = %v, want ErrSize", size, err)
		}
	}
}

func TestSetAt(t *testing.T) {
	b := newBuffer(t, 4, 3)
	if !b.Set(3, 2, 'x') {
		t.Fatal("Set inside buffer reported false")
	}
	if b.Cells()[2*4+3] != 'x' || b.At(3, 2) != 'x' {
		t.Error("Set did not write row-major")
	}
	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, 3}, {0, -1}} {
		if b.Set(p[0], p[1], 'y') {
			t.Errorf("Set(%v) outside buffer reported true", p)
		}
		if b.At(p[0], p[1]) != Blank {
			t.Errorf("At(%v) outside buffer should be blank", p)
		}
	}
	if b.Len() != 12 {
		t.Errorf("Len() changed to %d", b.Len())
	}
}

func TestWriteText(t *testing.T) {
	tests := []struct {
		name    string
		row     int
		text    string
		wantRow int
		want    string
	}{
		{"first row", 0, "FPS", 0, "FPS       "},
		{"past last row clamps", 99, "hi", 3, "hi        "},
		{"last row exactly", 3, "ok", 3, "ok        "},
		{"negative row clamps", -5, "up", 0, "up        "},
		{"truncated", 1, "abcdefghijklmnop", 1, "abcdefghij"},
		{"fullwidth folded", 2, "ＡＢ", 2, "AB        "},
		{"wide replaced", 2, "界x", 2, "?x        "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBuffer(t, 10, 4)
			b.WriteText(tt.row, tt.text)
			if got := b.Row(tt.wantRow); got != tt.want {
				t.Errorf("Row(%d) = %q, want %q", tt.wantRow, got, tt.want)
			}
			if b.Len() != 40 {
				t.Errorf("Len() = %d after write", b.Len())
			}
		})
	}
}

func TestWriteTextAtReturnsWritten(t *testing.T) {
	b := newBuffer(t, 10, 2)
	if n := b.WriteTextAt(7, 0, "abcdef"); n != 3 {
		t.Errorf("WriteTextAt() = %d, want 3", n)
	}
	if got := b.Row(0); got != "       abc" {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestRowsAndCopy(t *testing.T) {
	src := newBuffer(t, 3, 2)
	src.WriteText(0, "abc")
	src.WriteText(1, "def")
	if got := strings.Join(src.Rows(), "|"); got != "abc|def" {
		t.Errorf("Rows() = %q", got)
	}

	dst := newBuffer(t, 3, 2)
	if err := dst.CopyFrom(src); err != nil {
		t.Fatal(err)
	}
	if dst.Row(1) != "def" {
		t.Errorf("CopyFrom did not copy: %q", dst.Row(1))
	}
	other := newBuffer(t, 2, 2)
	if err := other.CopyFrom(src); !errors.Is(err, ErrSize) {
		t.Errorf("CopyFrom mismatched error = %v, want ErrSize", err)
	}
}
