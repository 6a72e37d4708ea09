package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sheetsmith/sheetsmith/pkg/autolayout"
	"github.com/sheetsmith/sheetsmith/pkg/pipeline"
)

// layoutCommand creates the layout command for recomputing region
// positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		mode    string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [template.json]",
		Short: "Recompute region positions for a template",
		Long: `Recompute region positions for a template.

Three modes are available: grid places regions in equal cells, linear
stacks them top-down and wraps into columns, and adaptive (the default)
picks grid for templates with many objective questions and linear
otherwise. Region sizes are only ever shrunk to fit, never enlarged, and
positioning marks stay where the designer put them.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Mode = autolayout.Mode(mode)
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	standardsFlags(cmd, &opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().StringVarP(&mode, "mode", "m", string(autolayout.ModeAdaptive), "layout mode: grid, linear, adaptive")
	cmd.Flags().IntVar(&opts.Columns, "columns", 0, "grid columns (default: ceil(sqrt(n)))")
	cmd.Flags().IntVar(&opts.Rows, "rows", 0, "grid rows; derives the column count when --columns is unset")
	cmd.Flags().Float64Var(&opts.Spacing, "spacing", 0, "spacing between regions in mm")

	return cmd
}

// runLayout loads the template, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	tpl, err := loadTemplate(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Mode))
	spinner.Start()

	laid, cacheHit, err := runner.LayoutWithCacheInfo(ctx, tpl, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	out := outputPath(input, output, ".layout.json")
	if err := laid.WriteFile(out); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}

	printSuccess("Layout complete")
	printFile(out)
	printStats(len(laid.Regions), cacheHit)
	printNewline()
	printNextStep("Preview", "sheetsmith preview "+out)

	return nil
}
