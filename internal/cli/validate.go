package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sheetsmith/sheetsmith/pkg/pipeline"
)

// validateCommand creates the validate command for scoring templates.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		noCache  bool
		asJSON   bool
		minScore float64
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "validate [template.json]",
		Short: "Score a template against OMR standards",
		Long: `Score a template against OMR standards.

Every region gets size, position, and OMR compliance metrics on a 0-100
scale, and the report aggregates issues (collisions, margin violations,
missing positioning marks) with concrete fix suggestions.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args[0], opts, noCache, asJSON, minScore)
		},
	}

	standardsFlags(cmd, &opts)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the report as JSON")
	cmd.Flags().Float64Var(&minScore, "min-score", 0, "exit non-zero if the overall score is below this value")

	return cmd
}

// runValidate loads the template, scores it, and prints the report.
func (c *CLI) runValidate(ctx context.Context, input string, opts pipeline.Options, noCache, asJSON bool, minScore float64) error {
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
	p := newProgress(c.Logger)

	report, cacheHit, err := runner.ValidateWithCacheInfo(ctx, tpl, opts)
	if err != nil {
		return fmt.Errorf("validate template: %w", err)
	}
	p.done(fmt.Sprintf("Scored %d regions", len(tpl.Regions)))

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printReport(report, tpl)
	printNewline()
	printStats(len(tpl.Regions), cacheHit)
	printNewline()
	printNextStep("Improve", "sheetsmith suggest "+input)

	if minScore > 0 && report.OverallScore < minScore {
		return fmt.Errorf("overall score %.1f below required minimum %.1f", report.OverallScore, minScore)
	}
	return nil
}
