package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/branchboard/branchboard/pkg/layout"
	"github.com/branchboard/branchboard/pkg/snapshot"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes pull request and worktree info in node labels.
	// When false, only the branch name or task title is shown.
	Detailed bool

	// Orientation controls rank direction: rows renders top-to-bottom,
	// columns left-to-right. Zero value falls back to rows.
	Orientation layout.Orientation
}

// ToDOT converts a computed layout to Graphviz DOT format. The snapshot
// supplies pull request state for node colors; it may be nil, in which
// case all branch nodes render with the default fill.
func ToDOT(res layout.Result, snap *snapshot.Snapshot, opts Options) string {
	rankdir := "TB"
	if opts.Orientation == layout.OrientationColumns {
		rankdir = "LR"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph branchboard {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range res.Nodes {
		label := fmtLabel(n, snap, opts.Detailed)
		attrs := fmtAttrs(n, snap, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range res.Edges {
		attrs := edgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From.ID, e.To.ID)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From.ID, e.To.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *layout.Node, snap *snapshot.Snapshot, detailed bool) string {
	if n.Tentative {
		title := n.ID
		if n.Task != nil && n.Task.Title != "" {
			title = n.Task.Title
		}
		if detailed {
			return title + "\nplanned"
		}
		return title
	}

	if !detailed || snap == nil {
		return n.ID
	}
	sn, ok := snap.Node(n.ID)
	if !ok {
		return n.ID
	}

	var parts []string
	if sn.PRState != snapshot.PRStateNone {
		pr := fmt.Sprintf("PR %s", sn.PRState)
		if sn.PRNumber > 0 {
			pr = fmt.Sprintf("PR #%d %s", sn.PRNumber, sn.PRState)
		}
		parts = append(parts, pr)
	}
	if sn.Ahead > 0 || sn.Behind > 0 {
		parts = append(parts, fmt.Sprintf("+%d/-%d", sn.Ahead, sn.Behind))
	}
	if sn.Worktree != "" {
		parts = append(parts, sn.Worktree)
	}
	if len(parts) == 0 {
		return n.ID
	}
	return n.ID + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *layout.Node, snap *snapshot.Snapshot, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Tentative {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
		return attrs
	}
	if snap == nil {
		return attrs
	}
	sn, ok := snap.Node(n.ID)
	if !ok {
		return attrs
	}
	if color := prFillColor(sn.PRState); color != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", color))
	}
	return attrs
}

// prFillColor maps pull request state to a fill color. The switch is
// exhaustive so a new state fails loudly here instead of silently
// rendering white.
func prFillColor(state snapshot.PRState) string {
	switch state {
	case snapshot.PRStateNone:
		return ""
	case snapshot.PRStateDraft:
		return "#d4d4d8"
	case snapshot.PRStateOpen:
		return "#bbf7d0"
	case snapshot.PRStateMerged:
		return "#ddd6fe"
	case snapshot.PRStateClosed:
		return "#fecaca"
	default:
		return ""
	}
}

func edgeAttrs(e *layout.Edge) []string {
	var attrs []string
	if e.Tentative {
		attrs = append(attrs, "style=dashed", "color=grey40")
	} else if !e.Designed {
		attrs = append(attrs, "style=dotted")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root element so the viewBox starts at
// the origin. Graphviz emits translated viewBoxes that confuse some
// embedders.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
