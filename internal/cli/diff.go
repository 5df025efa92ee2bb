package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/branchboard/branchboard/pkg/diff"
	"github.com/branchboard/branchboard/pkg/observability"
)

// diffCommand creates the diff command for comparing text files.
func (c *CLI) diffCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "diff [old] [new]",
		Short: "Line diff between two text files",
		Long: `Line diff between two text files.

Prints the line-level diff the dashboard uses for instruction-document
review: unchanged lines plain, additions green with a leading +, and
removals red with a leading -. Use --json for the raw diff structure.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDiff(cmd.Context(), args[0], args[1], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the diff as JSON")

	return cmd
}

func (c *CLI) runDiff(ctx context.Context, oldPath, newPath string, asJSON bool) error {
	oldData, err := os.ReadFile(oldPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", oldPath, err)
	}
	newData, err := os.ReadFile(newPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", newPath, err)
	}

	old, new := string(oldData), string(newData)
	start := time.Now()
	observability.Diff().OnDiffStart(ctx, lineCount(old), lineCount(new))
	lines := diff.Lines(old, new)
	observability.Diff().OnDiffComplete(ctx, len(lines), time.Since(start))

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(lines)
	}

	added, removed := 0, 0
	for _, l := range lines {
		switch l.Op {
		case diff.OpAdded:
			added++
			fmt.Println(StyleAdded.Render("+ " + l.Content))
		case diff.OpRemoved:
			removed++
			fmt.Println(StyleRemoved.Render("- " + l.Content))
		default:
			fmt.Println("  " + l.Content)
		}
	}

	printNewline()
	printDetail("%d added, %d removed", added, removed)
	return nil
}

// lineCount mirrors the diff engine's splitting: the empty string has no
// lines.
func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
