package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	bberrors "github.com/branchboard/branchboard/pkg/errors"
	"github.com/branchboard/branchboard/pkg/layout"
	"github.com/branchboard/branchboard/pkg/plan"
	"github.com/branchboard/branchboard/pkg/render/dot"
	"github.com/branchboard/branchboard/pkg/snapshot"
)

// Export formats.
const (
	formatSVG = "svg"
	formatDOT = "dot"
)

// exportCommand creates the export command for rendering diagrams.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		planFile   string
		anchor     string
		format     string
		output     string
		configFile string
		detailed   bool
	)

	cmd := &cobra.Command{
		Use:   "export [snapshot.json]",
		Short: "Render a branch snapshot as an SVG or DOT diagram",
		Long: `Render a branch snapshot as an SVG or DOT diagram.

The export command computes the same layout the dashboard shows and
renders it through Graphviz. With --plan, planned tasks appear as dashed
tentative nodes. SVG rendering happens in-process; no graphviz binary is
required.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], planFile, anchor, format, output, configFile, detailed)
		},
	}

	cmd.Flags().StringVarP(&planFile, "plan", "p", "", "plan YAML to overlay as tentative nodes")
	cmd.Flags().StringVar(&anchor, "anchor", "", "branch the plan overlay hangs under")
	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: svg, dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file (default: XDG config dir)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include PR and worktree info in labels")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input, planFile, anchor, format, output, configFile string, detailed bool) error {
	if format != formatSVG && format != formatDOT {
		return bberrors.New(bberrors.ErrCodeUnsupported, "unknown format %q (want svg or dot)", format)
	}

	snap, err := snapshot.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", input, err)
	}

	var p *plan.Plan
	if planFile != "" {
		p, err = plan.LoadFile(planFile)
		if err != nil {
			return fmt.Errorf("load plan %s: %w", planFile, err)
		}
	}

	appCfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	cfg := appCfg.LayoutOptions()

	in := layout.Input{DefaultBranch: snap.DefaultBranch}
	in.Nodes, in.Edges = snap.Graph()
	if p != nil {
		in.Tasks = p.Tasks
		in.Deps = p.Deps
		in.Anchor = anchor
	}
	res := layout.Compute(in, cfg)

	src := dot.ToDOT(res, snap, dot.Options{
		Detailed:    detailed,
		Orientation: cfg.Orientation,
	})

	var data []byte
	if format == formatDOT {
		data = []byte(src)
	} else {
		spinner := newSpinnerWithContext(ctx, "Rendering SVG...")
		spinner.Start()
		data, err = dot.RenderSVG(ctx, src)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render svg: %w", err)
		}
		spinner.Stop()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + "." + format
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Export complete")
	printFile(outputPath)
	printStats(len(res.Nodes), len(res.Edges), false)

	return nil
}
