package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/branchboard/branchboard/pkg/observability"
)

func writeDiffInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunDiffHooks(t *testing.T) {
	hooks := &recordingDiffHooks{}
	observability.SetDiffHooks(hooks)
	t.Cleanup(observability.Reset)

	dir := t.TempDir()
	oldPath := writeDiffInput(t, dir, "old.md", "a\nb")
	newPath := writeDiffInput(t, dir, "new.md", "a\nc")

	c := New(io.Discard, LogInfo)
	if err := c.runDiff(context.Background(), oldPath, newPath, true); err != nil {
		t.Fatalf("runDiff: %v", err)
	}

	if hooks.oldLines != 2 || hooks.newLines != 2 {
		t.Errorf("start = %d/%d lines, want 2/2", hooks.oldLines, hooks.newLines)
	}
	// a unchanged, b removed, c added.
	if len(hooks.opCounts) != 1 || hooks.opCounts[0] != 3 {
		t.Errorf("opCounts = %v, want [3]", hooks.opCounts)
	}
}

func TestRunDiffMissingFile(t *testing.T) {
	c := New(io.Discard, LogInfo)
	if err := c.runDiff(context.Background(), "no-such-old", "no-such-new", true); err == nil {
		t.Error("expected error for missing input")
	}
}

func TestLineCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"a\nb", 2},
		{"a\n", 2},
	}
	for _, tt := range tests {
		if got := lineCount(tt.in); got != tt.want {
			t.Errorf("lineCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
