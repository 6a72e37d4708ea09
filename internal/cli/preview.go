package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sheetsmith/sheetsmith/pkg/pipeline"
)

// previewCommand creates the preview command for rendering templates.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "preview [template.json]",
		Short: "Render an SVG preview of a template",
		Long: `Render an SVG preview of a template.

Regions are drawn color-coded by kind on a page outline, with the
printable-area boundary marked. Previews are deterministic and cached
locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	standardsFlags(cmd, &opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.svg)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even if cached")
	cmd.Flags().Float64Var(&opts.PreviewScale, "scale", 0, "pixels per millimeter (default 4)")
	cmd.Flags().BoolVar(&opts.PreviewLabels, "labels", false, "draw region ids")
	cmd.Flags().BoolVar(&opts.PreviewGrid, "grid", false, "draw a 10 mm reference grid")

	return cmd
}

// runPreview loads the template, renders the SVG, and writes output.
func (c *CLI) runPreview(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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

	spinner := newSpinnerWithContext(ctx, "Rendering preview...")
	spinner.Start()

	svg, cacheHit, err := runner.RenderPreviewWithCacheInfo(ctx, tpl, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render preview: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	out := outputPath(input, output, ".svg")
	if err := os.WriteFile(out, svg, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}

	printSuccess("Preview rendered")
	printFile(out)
	printStats(len(tpl.Regions), cacheHit)

	return nil
}
