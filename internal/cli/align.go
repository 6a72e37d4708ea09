package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sheetsmith/sheetsmith/pkg/alignment"
	"github.com/sheetsmith/sheetsmith/pkg/pipeline"
)

// alignCommand creates the align command for aligning and distributing
// regions.
func (c *CLI) alignCommand() *cobra.Command {
	var (
		output     string
		ids        string
		horizontal string
		vertical   string
		spacing    float64
	)

	cmd := &cobra.Command{
		Use:   "align [template.json]",
		Short: "Align or distribute regions",
		Long: `Align or distribute regions.

Horizontal modes move regions along the X axis (left, center, right,
distribute); vertical modes move them along the Y axis (top, middle,
bottom, distribute). Distribution spreads regions so the gaps between them
are equal, preserving the overall span unless an explicit --spacing is
given. By default every region participates; --ids restricts the
selection.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alignOpts := alignment.Options{
				Horizontal: alignment.HMode(horizontal),
				Vertical:   alignment.VMode(vertical),
				Spacing:    spacing,
			}
			return c.runAlign(cmd.Context(), args[0], alignOpts, parseIDs(ids), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.aligned.json)")
	cmd.Flags().StringVar(&ids, "ids", "", "comma-separated region ids to align (default: all)")
	cmd.Flags().StringVar(&horizontal, "horizontal", "", "horizontal mode: left, center, right, distribute")
	cmd.Flags().StringVar(&vertical, "vertical", "", "vertical mode: top, middle, bottom, distribute")
	cmd.Flags().Float64Var(&spacing, "spacing", 0, "explicit gap in mm for distribute modes")

	return cmd
}

// runAlign loads the template, aligns the selection, and writes output.
func (c *CLI) runAlign(ctx context.Context, input string, alignOpts alignment.Options, ids []string, output string) error {
	if alignOpts.Horizontal == "" && alignOpts.Vertical == "" {
		return fmt.Errorf("nothing to do: pass --horizontal and/or --vertical")
	}

	tpl, err := loadTemplate(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	aligned, err := runner.Align(ctx, tpl, ids, alignOpts, pipeline.Options{Logger: c.Logger})
	if err != nil {
		return fmt.Errorf("align regions: %w", err)
	}

	out := outputPath(input, output, ".aligned.json")
	if err := aligned.WriteFile(out); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}

	selected := len(ids)
	if selected == 0 {
		selected = len(tpl.Regions)
	}
	printSuccess("Aligned %d region(s)", selected)
	printFile(out)
	printNewline()
	printNextStep("Verify", "sheetsmith validate "+out)

	return nil
}
