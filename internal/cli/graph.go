package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/andriilab/sdv/pkg/pipeline"
)

// graphCommand analyzes solutions and writes the merged graph.
//
// Solutions come from the arguments or, when none are given, from the
// config file. Include, exclude and label flags override the config.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		opts analysisOpts
		out  outputOpts
	)

	cmd := &cobra.Command{
		Use:   "graph [solution.sln...]",
		Short: "Build the dependency graph of one or more solutions",
		Example: `  sdv graph src/Shop.sln -o shop.json
  sdv graph Shop.sln Admin.sln --exclude 'Microsoft.*,System.*' -f svg -o deps.svg
  sdv graph Shop.sln --merge --label 'IsProject= (solution)'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(out.format); err != nil {
				return err
			}
			req, err := c.request(cmd, &opts, args)
			if err != nil {
				return err
			}
			return c.runGraph(cmd.Context(), req, opts.noCache, &out, cmd.OutOrStdout())
		},
	}
	opts.bind(cmd, true)
	out.bind(cmd, formatJSON)

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, req pipeline.Request, noCache bool, out *outputOpts, stdout io.Writer) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	stats, restore := c.watch()
	defer restore()

	prog := newProgress(c.Logger)
	var spin *spinner
	if quiet(c.Logger) {
		spin = startSpinner(ctx, fmt.Sprintf("Analyzing %d solution(s)...", len(req.Solutions)))
	}

	result, err := runner.Run(ctx, req)
	if spin != nil {
		if err != nil {
			spin.Fail("Analysis failed")
		} else {
			spin.Stop()
		}
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Analyzed %d solution(s), %d project(s)", result.Stats.Solutions, result.Stats.Projects))

	if err := writeGraph(ctx, result.Graph, out, stdout); err != nil {
		return fmt.Errorf("write %s: %w", out.format, err)
	}
	if out.output == "" {
		stats.report()
		return nil
	}

	printSuccess("Dependency graph written")
	printFile(out.output)
	printStats(result.Stats.Nodes, result.Stats.Edges, result.Stats.Conflicts)
	stats.report()
	if result.Stats.Conflicts > 0 {
		printWarning("%d dependency edges carry more than one version", result.Stats.Conflicts)
	}
	if out.format == formatJSON {
		printNextStep("Render", appName+" render "+out.output)
	}
	return nil
}
