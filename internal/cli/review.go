package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/branchboard/branchboard/pkg/diff"
)

// reviewCommand creates the review command for interactive hunk review.
func (c *CLI) reviewCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "review [old] [new]",
		Short: "Interactively accept or reject diff hunks",
		Long: `Interactively accept or reject diff hunks.

Review walks the line diff between two files hunk by hunk, the same flow
the dashboard uses for proposed instruction-document edits. Accepted
hunks take the new side, rejected hunks keep the old side, and the merged
result is written when the review finishes.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReview(args[0], args[1], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite [old])")

	return cmd
}

func (c *CLI) runReview(oldPath, newPath, output string) error {
	oldData, err := os.ReadFile(oldPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", oldPath, err)
	}
	newData, err := os.ReadFile(newPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", newPath, err)
	}

	lines := diff.Lines(string(oldData), string(newData))
	model := NewReviewModel(lines)
	if len(model.Hunks) == 0 {
		printInfo("Files are identical, nothing to review")
		return nil
	}

	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("run review: %w", err)
	}
	m, ok := final.(ReviewModel)
	if !ok || m.Aborted {
		printWarning("Review aborted, nothing written")
		return nil
	}

	outputPath := output
	if outputPath == "" {
		outputPath = oldPath
	}
	merged := m.Merged()
	if err := os.WriteFile(outputPath, []byte(merged), 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	accepted, rejected := m.counts()
	printSuccess("Review complete")
	printFile(outputPath)
	printDetail("%d hunks accepted, %d kept as before", accepted, rejected)
	return nil
}

// =============================================================================
// Hunks
// =============================================================================

// decision records the reviewer's verdict on one hunk.
type decision int

const (
	decisionPending decision = iota
	decisionAccepted
	decisionRejected
)

// hunk is a maximal run of consecutive added/removed lines; the indexes
// address the full diff line slice.
type hunk struct {
	Start, End int // half-open [Start, End)
}

// buildHunks groups the changed lines of a diff into review units.
// Unchanged lines are context and never belong to a hunk.
func buildHunks(lines []diff.Line) []hunk {
	var hunks []hunk
	start := -1
	for i, l := range lines {
		if l.Op == diff.OpUnchanged {
			if start >= 0 {
				hunks = append(hunks, hunk{Start: start, End: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		hunks = append(hunks, hunk{Start: start, End: len(lines)})
	}
	return hunks
}

// mergeLines replays the diff applying one verdict per hunk: accepted
// hunks contribute their added lines, everything else keeps the old side.
// Pending hunks count as rejected so an unfinished review never loses
// content.
func mergeLines(lines []diff.Line, hunks []hunk, decisions []decision) string {
	hunkAt := make([]int, len(lines))
	for i := range hunkAt {
		hunkAt[i] = -1
	}
	for hi, h := range hunks {
		for i := h.Start; i < h.End; i++ {
			hunkAt[i] = hi
		}
	}

	var out []string
	for i, l := range lines {
		accepted := hunkAt[i] >= 0 && decisions[hunkAt[i]] == decisionAccepted
		switch l.Op {
		case diff.OpUnchanged:
			out = append(out, l.Content)
		case diff.OpAdded:
			if accepted {
				out = append(out, l.Content)
			}
		case diff.OpRemoved:
			if !accepted {
				out = append(out, l.Content)
			}
		}
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n")
}

// =============================================================================
// ReviewModel - Interactive hunk review
// =============================================================================

var (
	reviewAcceptedStyle = lipgloss.NewStyle().Foreground(colorGreen)
	reviewRejectedStyle = lipgloss.NewStyle().Foreground(colorRed)
	reviewPendingStyle  = lipgloss.NewStyle().Foreground(colorYellow)
)

// ReviewModel is the bubbletea model for hunk-by-hunk diff review.
type ReviewModel struct {
	Lines     []diff.Line
	Hunks     []hunk
	Decisions []decision
	Cursor    int
	Aborted   bool
	Height    int
}

// NewReviewModel creates a review model over a computed diff.
func NewReviewModel(lines []diff.Line) ReviewModel {
	hunks := buildHunks(lines)
	return ReviewModel{
		Lines:     lines,
		Hunks:     hunks,
		Decisions: make([]decision, len(hunks)),
		Height:    20,
	}
}

func (m ReviewModel) Init() tea.Cmd {
	return nil
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.Aborted = true
			return m, tea.Quit
		case "q", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Hunks)-1 {
				m.Cursor++
			}
		case "a":
			m.Decisions[m.Cursor] = decisionAccepted
			m.advance()
		case "r":
			m.Decisions[m.Cursor] = decisionRejected
			m.advance()
		case "A":
			for i := range m.Decisions {
				m.Decisions[i] = decisionAccepted
			}
		case "R":
			for i := range m.Decisions {
				m.Decisions[i] = decisionRejected
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// advance moves the cursor to the next undecided hunk, if any.
func (m *ReviewModel) advance() {
	for i := m.Cursor + 1; i < len(m.Hunks); i++ {
		if m.Decisions[i] == decisionPending {
			m.Cursor = i
			return
		}
	}
}

func (m ReviewModel) View() string {
	var b strings.Builder

	accepted, rejected := m.counts()
	b.WriteString(StyleTitle.Render("Review Changes"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf(
		"hunk %d/%d · %s · %s",
		m.Cursor+1, len(m.Hunks),
		reviewAcceptedStyle.Render(fmt.Sprintf("%d accepted", accepted)),
		reviewRejectedStyle.Render(fmt.Sprintf("%d rejected", rejected)),
	)))
	b.WriteString("\n\n")

	current := m.Hunks[m.Cursor]
	start, end := m.window(current)
	for i := start; i < end; i++ {
		b.WriteString(m.renderLine(i, current))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("j/k next/prev  a accept  r reject  A/R all  ⏎ finish  esc abort"))
	return b.String()
}

// window clips the visible line range around the current hunk.
func (m ReviewModel) window(current hunk) (int, int) {
	context := (m.Height - (current.End - current.Start)) / 2
	if context < 2 {
		context = 2
	}
	start := current.Start - context
	if start < 0 {
		start = 0
	}
	end := current.End + context
	if end > len(m.Lines) {
		end = len(m.Lines)
	}
	return start, end
}

func (m ReviewModel) renderLine(i int, current hunk) string {
	l := m.Lines[i]
	inCurrent := i >= current.Start && i < current.End

	marker := "  "
	if inCurrent {
		marker = m.markerForCursor()
	}

	switch l.Op {
	case diff.OpAdded:
		return marker + StyleAdded.Render("+ "+l.Content)
	case diff.OpRemoved:
		return marker + StyleRemoved.Render("- "+l.Content)
	default:
		return marker + StyleDim.Render("  "+l.Content)
	}
}

func (m ReviewModel) markerForCursor() string {
	switch m.Decisions[m.Cursor] {
	case decisionAccepted:
		return reviewAcceptedStyle.Render("✓ ")
	case decisionRejected:
		return reviewRejectedStyle.Render("✗ ")
	default:
		return reviewPendingStyle.Render("▸ ")
	}
}

// Merged returns the post-review text.
func (m ReviewModel) Merged() string {
	return mergeLines(m.Lines, m.Hunks, m.Decisions)
}

func (m ReviewModel) counts() (accepted, rejected int) {
	for _, d := range m.Decisions {
		switch d {
		case decisionAccepted:
			accepted++
		case decisionRejected:
			rejected++
		}
	}
	return accepted, rejected
}
