package diff

import (
	"strings"
	"testing"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name string
		old  string
		new  string
		want []Line
	}{
		{
			name: "BothEmpty",
			old:  "",
			new:  "",
			want: nil,
		},
		{
			name: "AllAdded",
			old:  "",
			new:  "a\nb",
			want: []Line{{OpAdded, "a"}, {OpAdded, "b"}},
		},
		{
			name: "AllRemoved",
			old:  "a\nb",
			new:  "",
			want: []Line{{OpRemoved, "a"}, {OpRemoved, "b"}},
		},
		{
			name: "MiddleRemoval",
			old:  "a\nb\nc",
			new:  "a\nc",
			want: []Line{{OpUnchanged, "a"}, {OpRemoved, "b"}, {OpUnchanged, "c"}},
		},
		{
			name: "MiddleInsertion",
			old:  "a\nc",
			new:  "a\nb\nc",
			want: []Line{{OpUnchanged, "a"}, {OpAdded, "b"}, {OpUnchanged, "c"}},
		},
		{
			name: "Replacement",
			old:  "a\nold\nc",
			new:  "a\nnew\nc",
			want: []Line{{OpUnchanged, "a"}, {OpRemoved, "old"}, {OpAdded, "new"}, {OpUnchanged, "c"}},
		},
		{
			name: "TrailingAdditions",
			old:  "a",
			new:  "a\nb\nc",
			want: []Line{{OpUnchanged, "a"}, {OpAdded, "b"}, {OpAdded, "c"}},
		},
		{
			name: "EmptyLinesPreserved",
			old:  "a\n\nb",
			new:  "a\n\nb",
			want: []Line{{OpUnchanged, "a"}, {OpUnchanged, ""}, {OpUnchanged, "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lines(tt.old, tt.new)
			if len(got) != len(tt.want) {
				t.Fatalf("lines = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLinesIdentical(t *testing.T) {
	text := "one\ntwo\nthree\n"
	for _, l := range Lines(text, text) {
		if l.Op != OpUnchanged {
			t.Errorf("line %q tagged %v, want unchanged", l.Content, l.Op)
		}
	}
}

func TestLinesReconstructsBothSides(t *testing.T) {
	old := "alpha\nbeta\ngamma\ndelta"
	new := "alpha\ngamma\nepsilon\ndelta"

	var oldSide, newSide []string
	for _, l := range Lines(old, new) {
		switch l.Op {
		case OpUnchanged:
			oldSide = append(oldSide, l.Content)
			newSide = append(newSide, l.Content)
		case OpRemoved:
			oldSide = append(oldSide, l.Content)
		case OpAdded:
			newSide = append(newSide, l.Content)
		}
	}

	if got := strings.Join(oldSide, "\n"); got != old {
		t.Errorf("old side reconstructed as %q", got)
	}
	if got := strings.Join(newSide, "\n"); got != new {
		t.Errorf("new side reconstructed as %q", got)
	}
}

func TestOpString(t *testing.T) {
	if OpUnchanged.String() != "unchanged" || OpAdded.String() != "added" || OpRemoved.String() != "removed" {
		t.Error("op tags changed")
	}
}
