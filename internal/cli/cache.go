package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/andriilab/sdv/pkg/cache"
)

// cacheCommand groups the archive cache maintenance commands.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the package archive cache",
		Long: `sdv remembers the dependencies declared inside each .nupkg it reads,
keyed by archive path, size and modification time. Entries expire after
30 days. The cache lives in $SDV_CACHE_DIR, $XDG_CACHE_HOME/sdv or
~/.cache/sdv, whichever is set first.`,
	}
	cmd.AddCommand(
		inCacheDir("clear", "Remove all cached archive entries", runCacheClear),
		inCacheDir("prune", "Remove expired and unreadable cache entries", runCachePrune),
		inCacheDir("path", "Print the cache directory path", func(cmd *cobra.Command, dir string) error {
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		}),
	)
	return cmd
}

// inCacheDir builds a subcommand whose run function receives the resolved
// cache directory.
func inCacheDir(use, short string, run func(cmd *cobra.Command, dir string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("resolve cache dir: %w", err)
			}
			return run(cmd, dir)
		},
	}
}

func runCacheClear(_ *cobra.Command, dir string) error {
	n, err := clearDir(dir)
	if err != nil {
		return err
	}
	if n == 0 {
		printInfo("Cache is empty")
		return nil
	}
	printSuccess("Cleared %d cached entries", n)
	printDetail("Directory: %s", dir)
	return nil
}

func runCachePrune(cmd *cobra.Command, dir string) error {
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	n, err := fc.Prune(cmd.Context())
	if err != nil {
		return fmt.Errorf("prune %s: %w", dir, err)
	}
	if n == 0 {
		printInfo("Nothing to prune")
		return nil
	}
	printSuccess("Pruned %d cached entries", n)
	return nil
}

// clearDir counts the files below dir, then removes dir. A missing dir
// counts as empty.
func clearDir(dir string) (int, error) {
	n := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		switch {
		case err != nil && path == dir && os.IsNotExist(err):
			return fs.SkipAll
		case err != nil:
			return nil
		case !d.IsDir():
			n++
		}
		return nil
	})
	if err != nil || n == 0 {
		return 0, err
	}
	return n, os.RemoveAll(dir)
}
