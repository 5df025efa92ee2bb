package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/branchboard/branchboard/pkg/cache"
	bberrors "github.com/branchboard/branchboard/pkg/errors"
	"github.com/branchboard/branchboard/pkg/layout"
	"github.com/branchboard/branchboard/pkg/observability"
	"github.com/branchboard/branchboard/pkg/plan"
	"github.com/branchboard/branchboard/pkg/snapshot"
)

// layoutCommand creates the layout command for computing dashboard layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		planFile    string
		anchor      string
		orientation string
		output      string
		configFile  string
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "layout [snapshot.json]",
		Short: "Compute a dashboard layout from a branch snapshot",
		Long: `Compute a dashboard layout from a branch snapshot.

The layout command takes a snapshot.json file describing the repository's
branches and their relationships and computes node positions for the
dashboard canvas. With --plan, planned tasks are merged in as tentative
nodes hanging under the --anchor branch.

The output is a layout.json file that can be rendered with 'export'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], planFile, anchor, orientation, output, configFile, noCache)
		},
	}

	cmd.Flags().StringVarP(&planFile, "plan", "p", "", "plan YAML to overlay as tentative nodes")
	cmd.Flags().StringVar(&anchor, "anchor", "", "branch the plan overlay hangs under")
	cmd.Flags().StringVar(&orientation, "orientation", "", "flow direction: rows, columns (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file (default: XDG config dir)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout loads the inputs, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, planFile, anchor, orientation, output, configFile string, noCache bool) error {
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
	if orientation != "" {
		switch o := layout.Orientation(orientation); o {
		case layout.OrientationRows, layout.OrientationColumns:
			cfg.Orientation = o
		default:
			return bberrors.New(bberrors.ErrCodeInvalidConfig, "unknown orientation %q", orientation)
		}
	}

	layoutCache := newCache(noCache)
	defer layoutCache.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	data, cacheHit, err := computeLayout(ctx, layoutCache, snap, p, anchor, cfg)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	var l snapshot.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return fmt.Errorf("decode layout: %w", err)
	}
	if err := snapshot.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(l.Nodes), len(l.Edges), cacheHit)
	printNewline()
	printNextStep("Render", appName+" export "+input)

	return nil
}

// computeLayout returns the marshalled layout for the inputs, consulting
// the cache first. The bool reports whether the result was a cache hit.
func computeLayout(ctx context.Context, layoutCache cache.Cache, snap *snapshot.Snapshot, p *plan.Plan, anchor string, cfg layout.Config) ([]byte, bool, error) {
	key := layoutCacheKey(snap, p, anchor, cfg)
	if data, ok, err := layoutCache.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}

	in := layout.Input{DefaultBranch: snap.DefaultBranch}
	in.Nodes, in.Edges = snap.Graph()
	if p != nil {
		in.Tasks = p.Tasks
		in.Deps = p.Deps
		in.Anchor = anchor
		if _, ok := snap.Node(anchor); !ok && len(in.Tasks) > 0 {
			observability.Layout().OnOverlaySkipped(ctx, anchor)
		}
	}

	res := layout.Compute(in, cfg)
	data, err := snapshot.MarshalLayout(snapshot.FromResult(res))
	if err != nil {
		return nil, false, fmt.Errorf("marshal layout: %w", err)
	}

	_ = layoutCache.Set(ctx, key, data, cache.DefaultTTL)
	return data, false, nil
}

func layoutCacheKey(snap *snapshot.Snapshot, p *plan.Plan, anchor string, cfg layout.Config) string {
	planHash := ""
	if p != nil {
		data, _ := json.Marshal(struct {
			Plan   *plan.Plan `json:"plan"`
			Anchor string     `json:"anchor"`
		}{p, anchor})
		planHash = cache.Hash(data)
	}
	return cache.LayoutKey(cache.Hash(snap.Hashable()), planHash, cfg)
}
