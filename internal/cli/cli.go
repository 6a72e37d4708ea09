// Package cli implements the sheetsmith command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sheetsmith/sheetsmith/pkg/buildinfo"
	"github.com/sheetsmith/sheetsmith/pkg/cache"
	"github.com/sheetsmith/sheetsmith/pkg/errors"
	"github.com/sheetsmith/sheetsmith/pkg/pipeline"
	"github.com/sheetsmith/sheetsmith/pkg/sheet"
)

// appName is the application name used for directories and display.
const appName = "sheetsmith"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "sheetsmith",
		Short:        "Sheetsmith designs and validates answer-sheet templates",
		Long:         `Sheetsmith is a CLI tool for laying out answer-sheet templates for optical mark recognition: it validates region geometry against OMR standards, resolves collisions, computes layouts, and renders previews.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.validateCommand())
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.alignCommand())
	root.AddCommand(c.suggestCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/sheetsmith/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// loadTemplate reads a template file, translating coded errors into
// user-facing messages.
func loadTemplate(path string) (*sheet.Template, error) {
	tpl, err := sheet.ReadTemplateFile(path)
	if err != nil {
		return nil, fmt.Errorf("load template %s: %s", path, errors.UserMessage(err))
	}
	return tpl, nil
}

// outputPath derives an output file path: an explicit path wins, otherwise
// the input's extension is swapped for suffix.
func outputPath(input, explicit, suffix string) string {
	if explicit != "" {
		return explicit
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + suffix
}

// parseIDs splits a comma-separated region id list, dropping empties.
func parseIDs(s string) []string {
	if s == "" {
		return nil
	}
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// standardsFlags registers the shared profile selection flags.
func standardsFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&opts.Standards, "standards", "s", "standard", "standards profile: standard, primary, highschool, college")
	cmd.Flags().StringVar(&opts.StandardsFile, "standards-file", "", "custom standards profile (TOML), overrides --standards")
}
