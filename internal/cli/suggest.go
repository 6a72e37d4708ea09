package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sheetsmith/sheetsmith/pkg/pipeline"
	"github.com/sheetsmith/sheetsmith/pkg/suggest"
)

// suggestCommand creates the suggest command for design recommendations.
func (c *CLI) suggestCommand() *cobra.Command {
	var (
		output      string
		asJSON      bool
		interactive bool
		applyID     string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "suggest [template.json]",
		Short: "Generate ranked design suggestions for a template",
		Long: `Generate ranked design suggestions for a template.

Suggestions are ranked by confidence and cover layout, collisions,
alignment, spacing, bubble sizing, and positioning marks. Use --apply with
a suggestion id to execute one directly, or --interactive to pick from a
list. Applying writes an edited copy; the input file is never touched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSuggest(cmd.Context(), args[0], opts, output, asJSON, interactive, applyID)
		},
	}

	standardsFlags(cmd, &opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file for --apply (default: <input>.edited.json)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit suggestions as JSON")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick a suggestion to apply interactively")
	cmd.Flags().StringVar(&applyID, "apply", "", "apply the suggestion with this id")

	return cmd
}

// runSuggest generates suggestions and optionally applies one.
func (c *CLI) runSuggest(ctx context.Context, input string, opts pipeline.Options, output string, asJSON, interactive bool, applyID string) error {
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

	suggestions, err := runner.Suggest(ctx, tpl, opts)
	if err != nil {
		return fmt.Errorf("generate suggestions: %w", err)
	}

	if len(suggestions) == 0 {
		printSuccess("No suggestions: the template already meets the standards")
		return nil
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(suggestions)
	}

	var chosen *suggest.Suggestion
	switch {
	case applyID != "":
		for i := range suggestions {
			if suggestions[i].ID == applyID {
				chosen = &suggestions[i]
				break
			}
		}
		if chosen == nil {
			return fmt.Errorf("suggestion %q not triggered for this template", applyID)
		}
	case interactive:
		model, err := tea.NewProgram(NewSuggestionListModel(suggestions)).Run()
		if err != nil {
			return fmt.Errorf("run picker: %w", err)
		}
		if m, ok := model.(SuggestionListModel); ok {
			chosen = m.Selected
		}
		if chosen == nil {
			printInfo("Nothing applied")
			return nil
		}
	}

	if chosen == nil {
		fmt.Println(StyleTitle.Render("Suggestions"))
		printNewline()
		for i, s := range suggestions {
			printSuggestion(s, i)
		}
		printNewline()
		printNextStep("Apply one", fmt.Sprintf("sheetsmith suggest %s --apply %s", input, suggestions[0].ID))
		return nil
	}

	edited, err := applySuggestion(ctx, runner, tpl, *chosen, opts)
	if err != nil {
		return fmt.Errorf("apply %s: %w", chosen.ID, err)
	}

	out := outputPath(input, output, ".edited.json")
	if err := edited.WriteFile(out); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}

	printSuccess("Applied %q", chosen.Title)
	printFile(out)
	printNewline()
	printNextStep("Verify", "sheetsmith validate "+out)

	return nil
}
