// Package pipeline drives a dependency analysis across one or more
// solutions.
//
// A run has three stages per solution, executed in order:
//
//  1. Discover: parse the solution file and extract each project's manifest
//  2. Trees: build the filtered dependency forest of every project
//  3. Assemble: fold the forests into the shared graph
//
// Solutions are processed one after another and folded into a single
// [graph.Assembler], so packages shared between solutions collapse into one
// node.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	defer runner.Close()
//	result, err := runner.Run(ctx, pipeline.Request{
//	    Solutions: []string{"src/Shop.sln"},
//	    Exclude:   []string{"Microsoft.*"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	io.WriteJSON(result.Graph, os.Stdout)
package pipeline

import (
	"time"

	"github.com/andriilab/sdv/pkg/config"
	sdverr "github.com/andriilab/sdv/pkg/errors"
	"github.com/andriilab/sdv/pkg/filter"
	"github.com/andriilab/sdv/pkg/graph"
	"github.com/andriilab/sdv/pkg/solution"
)

// DefaultNuspecTTL bounds how long parsed archive dependencies stay cached.
// Entries are keyed by archive size and mtime, so a changed archive misses
// regardless.
const DefaultNuspecTTL = 30 * 24 * time.Hour

// =============================================================================
// Request
// =============================================================================

// Request is the input of one run.
type Request struct {
	Solutions       []string
	Include         []string
	Exclude         []string
	IncludeProjects bool
	MergeProjects   bool
	Labels          map[string][]string

	// PackageCache is the global NuGet package folder. Empty means
	// $NUGET_PACKAGES or ~/.nuget/packages.
	PackageCache string
}

// RequestFromConfig seeds a request from a loaded configuration file.
func RequestFromConfig(cfg config.Config) Request {
	return Request{
		Solutions:       cfg.Solutions,
		Include:         cfg.Include,
		Exclude:         cfg.Exclude,
		IncludeProjects: cfg.IncludeProjects,
		MergeProjects:   cfg.MergeProjects,
		Labels:          cfg.Labels,
		PackageCache:    cfg.PackageCache,
	}
}

// Validate checks every solution path and compiles the filters and label
// rules, so configuration errors surface before any solution is read.
func (r Request) Validate() error {
	if len(r.Solutions) == 0 {
		return sdverr.New(sdverr.ErrCodeInvalidSolution, "no solution specified")
	}
	for _, s := range r.Solutions {
		if err := solution.ValidatePath(s); err != nil {
			return err
		}
	}
	if _, err := r.filter(""); err != nil {
		return err
	}
	_, err := graph.CompileLabels(r.Labels)
	return err
}

// filter builds the filter configuration for one solution. Referenced
// projects are never emitted as roots when projects are merged.
func (r Request) filter(solutionPath string) (*filter.Config, error) {
	cfg, err := filter.NewConfig(solutionPath, r.Include, r.Exclude)
	if err != nil {
		return nil, err
	}
	cfg.IncludeDependentProjects = r.IncludeProjects && !r.MergeProjects
	return cfg, nil
}

// =============================================================================
// Result
// =============================================================================

// Result is the output of a run.
type Result struct {
	RunID     string
	Graph     *graph.Graph
	Solutions []*solution.Solution
	Stats     Stats
}

// Stats summarizes a run.
type Stats struct {
	Solutions int
	Projects  int
	Nodes     int
	Edges     int
	Conflicts int
	Duration  time.Duration
}
