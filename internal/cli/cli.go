// Package cli implements the sdv command-line interface.
//
// Commands:
//   - graph: analyze solutions and write the merged dependency graph
//   - tree: print the per-project dependency trees of one solution
//   - render: convert a saved graph to DOT or SVG
//   - cache: inspect, prune or clear the package archive cache
//   - completion: generate shell completion scripts
//
// Diagnostics go to one charmbracelet logger on stderr; --verbose lowers it
// to debug, --quiet raises it to warnings and turns on a spinner instead.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/andriilab/sdv/pkg/buildinfo"
	"github.com/andriilab/sdv/pkg/cache"
	"github.com/andriilab/sdv/pkg/config"
	"github.com/andriilab/sdv/pkg/pipeline"
)

const appName = config.AppName

// cacheDirEnv overrides the archive cache location.
const cacheDirEnv = "SDV_CACHE_DIR"

// Levels accepted by New and SetLogLevel.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// CLI carries what every command shares: the logger and the --config flag.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New returns a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel changes the level after flags are parsed.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the sdv command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "sdv visualizes the NuGet dependencies of .NET solutions",
		Long: `sdv reads Visual Studio solutions, extracts each project's NuGet dependencies
from project.assets.json or packages.config, and merges them into one
dependency graph with version conflicts highlighted.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	for _, sub := range []*cobra.Command{
		c.graphCommand(),
		c.treeCommand(),
		c.renderCommand(),
		c.cacheCommand(),
		c.completionCommand(),
	} {
		root.AddCommand(sub)
	}
	return root
}

// newRunner returns a runner backed by the archive cache, or by no cache
// at all with --no-cache.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	if noCache {
		return pipeline.NewRunner(cache.NewNullCache(), c.Logger), nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("Archive cache disabled", "err", err)
		return pipeline.NewRunner(cache.NewNullCache(), c.Logger), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(fc, c.Logger), nil
}

// loadConfig reads the --config file, or the default one when the flag is
// unset.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.configPath == "" {
		return config.Load()
	}
	return config.LoadFrom(c.configPath)
}

// cacheDir resolves the archive cache directory: $SDV_CACHE_DIR, then
// $XDG_CACHE_HOME/sdv, then ~/.cache/sdv.
func cacheDir() (string, error) {
	if dir := os.Getenv(cacheDirEnv); dir != "" {
		return dir, nil
	}
	if base := os.Getenv("XDG_CACHE_HOME"); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
