package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/andriilab/sdv/pkg/graph"
	"github.com/andriilab/sdv/pkg/pipeline"
	deptree "github.com/andriilab/sdv/pkg/tree"
)

// treeCommand prints the dependency trees of a single solution.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		opts  analysisOpts
		depth int
	)

	cmd := &cobra.Command{
		Use:   "tree [solution.sln]",
		Short: "Print the dependency tree of every project in a solution",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := c.request(cmd, &opts, args)
			if err != nil {
				return err
			}
			if len(req.Solutions) != 1 {
				return fmt.Errorf("tree needs exactly one solution, got %d", len(req.Solutions))
			}
			return c.runTree(cmd.Context(), req, opts.noCache, depth, cmd.OutOrStdout())
		},
	}
	opts.bind(cmd, false)
	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "maximum depth to print (0 for unlimited)")

	return cmd
}

func (c *CLI) runTree(ctx context.Context, req pipeline.Request, noCache bool, depth int, stdout io.Writer) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	stats, restore := c.watch()
	defer restore()

	sol, projects, err := runner.Trees(ctx, req, req.Solutions[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, solutionTree(sol.Name, projects, depth))
	stats.report()
	return nil
}

var (
	styleTreeEnum    = lipgloss.NewStyle().Foreground(colorDim).MarginRight(1)
	styleTreeVersion = lipgloss.NewStyle().Foreground(colorGray)
)

func newTree(root string) *tree.Tree {
	return tree.Root(root).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(styleTreeEnum)
}

// solutionTree renders projects as children of the solution.
func solutionTree(name string, projects []graph.ProjectTree, maxDepth int) *tree.Tree {
	t := newTree(styleTitle.Render(name))
	for _, p := range projects {
		pt := newTree(styleHighlight.Render(p.Name))
		for _, n := range p.Roots {
			pt.Child(dependencyTree(n, 1, maxDepth))
		}
		t.Child(pt)
	}
	return t
}

func dependencyTree(n *deptree.Node, depth, maxDepth int) any {
	label := nodeLabel(n)
	if len(n.Children) == 0 {
		return label
	}
	if maxDepth > 0 && depth >= maxDepth {
		return label + styleDim.Render(fmt.Sprintf(" (+%d)", n.Size()-1))
	}
	t := newTree(label)
	for _, child := range n.Children {
		t.Child(dependencyTree(child, depth+1, maxDepth))
	}
	return t
}

func nodeLabel(n *deptree.Node) string {
	id := styleValue.Render(n.ID)
	if n.Kind == deptree.Project {
		id = styleHighlight.Render(n.ID)
	}
	if n.Version == "" {
		return id
	}
	return id + " " + styleTreeVersion.Render(n.Version)
}
