package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sheetsmith/sheetsmith/pkg/pipeline"
)

// resolveCommand creates the resolve command for fixing region collisions.
func (c *CLI) resolveCommand() *cobra.Command {
	var (
		output  string
		inPlace bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "resolve [template.json]",
		Short: "Resolve overlapping regions in a template",
		Long: `Resolve overlapping regions in a template.

Overlaps are detected in region order and the later region of each pair is
moved rightward to the minimum spacing distance, wrapping to a new row when
it would cross the right margin. The input file is left untouched unless
--in-place is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResolve(cmd.Context(), args[0], opts, output, inPlace)
		},
	}

	standardsFlags(cmd, &opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.resolved.json)")
	cmd.Flags().BoolVar(&inPlace, "in-place", false, "overwrite the input file")

	return cmd
}

// runResolve loads the template, resolves collisions, and writes output.
func (c *CLI) runResolve(ctx context.Context, input string, opts pipeline.Options, output string, inPlace bool) error {
	tpl, err := loadTemplate(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	resolved, collisions, err := runner.Resolve(ctx, tpl, opts)
	if err != nil {
		return fmt.Errorf("resolve collisions: %w", err)
	}

	if collisions == 0 {
		printSuccess("No collisions found")
		return nil
	}

	out := outputPath(input, output, ".resolved.json")
	if inPlace {
		out = input
	}
	if err := resolved.WriteFile(out); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}

	printSuccess("Resolved %d collision(s)", collisions)
	printFile(out)
	printNewline()
	printNextStep("Verify", "sheetsmith validate "+out)

	return nil
}
