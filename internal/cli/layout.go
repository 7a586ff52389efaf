package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orbit/pkg/layout/circular"
	"github.com/matzehuels/orbit/pkg/mindmap"
	"github.com/matzehuels/orbit/pkg/pipeline"
)

// layoutFlags are shared by the layout and focus commands.
type layoutFlags struct {
	output  string
	dot     string
	noCache bool
	refresh bool
	params  circular.Params
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: <input>.positions.json)")
	cmd.Flags().StringVar(&f.dot, "dot", "", "also write a DOT file with pinned positions")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even if a cached layout exists")
	addParamFlags(cmd, &f.params)
}

// layoutCommand creates the layout command for whole-graph layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags            layoutFlags
		centerX, centerY float64
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json|graph.dot]",
		Short: "Lay out a whole mindmap on concentric rings",
		Long: `Lay out a whole mindmap on concentric rings.

Roots are spread over the inner ring in sectors sized by their child counts,
then relaxed to even spacing. Every generation goes one ring further out,
inside its root's sector. The output maps node IDs to center coordinates.

Graphs can be JSON (nodes with parent_id, optional edges) or Graphviz DOT.
Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Mode:    pipeline.ModeFull,
				CenterX: centerX,
				CenterY: centerY,
				Refresh: flags.refresh,
			}
			params := mergeParams(cmd, c.Config.Layout, flags.params)
			opts.Params = &params
			return c.runLayout(cmd.Context(), args[0], nil, opts, flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64Var(&centerX, "center-x", 0, "x coordinate of the layout center")
	cmd.Flags().Float64Var(&centerY, "center-y", 0, "y coordinate of the layout center")

	return cmd
}

// runLayout loads the graph, runs the pipeline, and writes outputs.
func (c *CLI) runLayout(ctx context.Context, input string, positions mindmap.Positions, opts pipeline.Options, flags layoutFlags) error {
	prog := newProgress(c.Logger)

	g, err := pipeline.LoadGraph(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Mode))
	spinner.Start()

	result, err := runner.Execute(ctx, g, positions, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = positionsPath(input)
	}
	if err := mindmap.WritePositionsFile(result.Positions, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	prog.done(fmt.Sprintf("Laid out %d nodes", result.Stats.Placed))

	printSuccess("Layout complete")
	printFile(outputPath)

	if flags.dot != "" {
		if err := os.WriteFile(flags.dot, []byte(mindmap.ToDOT(g, result.Positions)), 0o644); err != nil {
			return fmt.Errorf("write dot %s: %w", flags.dot, err)
		}
		printFile(flags.dot)
	}

	printStats(result.Stats.NodeCount, result.Stats.Placed, result.CacheHit)
	if result.HasActualRadius {
		printDetail("root ring radius %s", StyleNumber.Render(fmt.Sprintf("%.1f", result.ActualRadius)))
	}
	if result.Stats.Exhausted > 0 {
		printWarning("%d child groups still overlap; try a larger --level-spacing", result.Stats.Exhausted)
	}

	if opts.Mode == pipeline.ModeFull {
		printNextStep("Re-center a subtree", fmt.Sprintf("%s focus %s --positions %s", appName, input, outputPath))
	}
	return nil
}

// positionsPath derives the default output path for input.
func positionsPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".positions.json"
}
