package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/andriilab/sdv/pkg/cache"
	"github.com/andriilab/sdv/pkg/graph"
	"github.com/andriilab/sdv/pkg/nuget"
	"github.com/andriilab/sdv/pkg/solution"
	"github.com/andriilab/sdv/pkg/tree"
)

// Runner executes runs with a shared archive cache.
//
// The Runner keeps no state between runs besides the cache and logger.
// A single run is sequential; separate runs may share a Runner.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. If c is nil, a NullCache is used (caching
// disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Run analyzes every solution of req and returns the merged graph. A
// configuration error aborts before any solution is read; a project whose
// manifest cannot be extracted is dropped and the run continues.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	labels, err := graph.CompileLabels(req.Labels)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result := &Result{RunID: uuid.NewString()}
	logger := r.runLogger(result.RunID)
	sb := r.solutionBuilder(req, logger)
	tb := tree.NewBuilder(logger)
	asm := graph.NewAssembler(logger, labels)

	for _, path := range req.Solutions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logger.Info("Processing solution", "path", path)

		sol, trees, err := r.trees(ctx, sb, tb, req, path)
		if err != nil {
			return nil, fmt.Errorf("solution %s: %w", path, err)
		}
		asm.AddSolution(sol.Name, trees, req.MergeProjects)
		result.Solutions = append(result.Solutions, sol)
		result.Stats.Projects += len(sol.Projects)
	}

	result.Graph = asm.Graph()
	result.Stats.Solutions = len(result.Solutions)
	result.Stats.Nodes = len(result.Graph.Nodes)
	result.Stats.Edges = len(result.Graph.Edges)
	result.Stats.Conflicts = result.Graph.Conflicts()
	result.Stats.Duration = time.Since(start)

	logger.Info("assembled graph",
		"solutions", result.Stats.Solutions,
		"nodes", result.Stats.Nodes,
		"edges", result.Stats.Edges,
		"conflicts", result.Stats.Conflicts,
		"duration", result.Stats.Duration)
	return result, nil
}

// Trees discovers one solution and returns the dependency forest of each of
// its projects without assembling a graph.
func (r *Runner) Trees(ctx context.Context, req Request, path string) (*solution.Solution, []graph.ProjectTree, error) {
	req.Solutions = []string{path}
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}
	logger := r.runLogger(uuid.NewString())
	return r.trees(ctx, r.solutionBuilder(req, logger), tree.NewBuilder(logger), req, path)
}

func (r *Runner) trees(ctx context.Context, sb *solution.Builder, tb *tree.Builder, req Request, path string) (*solution.Solution, []graph.ProjectTree, error) {
	cfg, err := req.filter(path)
	if err != nil {
		return nil, nil, err
	}
	sol, err := sb.Build(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	trees := make([]graph.ProjectTree, 0, len(sol.Projects))
	for _, p := range sol.Projects {
		trees = append(trees, graph.ProjectTree{Name: p.Name, Roots: tb.Build(p.Extraction, cfg)})
	}
	return sol, trees, nil
}

func (r *Runner) solutionBuilder(req Request, logger *log.Logger) *solution.Builder {
	packages := nuget.NewPackageCache(req.PackageCache)
	logger.Debug("using package cache", "root", packages.GlobalRoot)
	nuspec := nuget.NewNuspecReader(r.Cache, DefaultNuspecTTL)
	return solution.NewBuilder(nuget.DefaultBuilders(packages, nuspec, logger), logger)
}

// runLogger tags every line of a run with a short run id.
func (r *Runner) runLogger(id string) *log.Logger {
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return r.Logger.WithPrefix("run " + short)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
