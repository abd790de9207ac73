package cli

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/andriilab/sdv/pkg/observability"
)

// runStats watches one command's analysis: it logs solution progress at
// debug level and counts archive reads for the summary printed afterwards.
type runStats struct {
	logger *log.Logger

	cached  atomic.Int64
	read    atomic.Int64
	dropped atomic.Int64
}

// watch installs a runStats as the analyzer's hooks. Call the returned
// function when the command is done.
func (c *CLI) watch() (*runStats, func()) {
	s := &runStats{logger: c.Logger}
	return s, observability.Install(s)
}

func (s *runStats) OnSolutionStart(_ context.Context, path string) {
	s.logger.Debug("Reading solution", "path", path)
}

func (s *runStats) OnSolutionComplete(_ context.Context, path string, projects int, d time.Duration, err error) {
	if err != nil {
		s.logger.Debug("Solution failed", "path", path, "err", err)
		return
	}
	s.logger.Debug("Solution read", "path", path, "projects", projects, "took", d.Round(time.Millisecond))
}

func (s *runStats) OnProjectDropped(context.Context, string, string, error) {
	s.dropped.Add(1)
}

func (s *runStats) OnCacheHit(context.Context, string)  { s.cached.Add(1) }
func (s *runStats) OnCacheMiss(context.Context, string) { s.read.Add(1) }

func (s *runStats) OnCacheSet(_ context.Context, kind string, size int) {
	s.logger.Debug("Cached archive dependencies", "kind", kind, "bytes", size)
}

// archives describes archive use, e.g. "12 archives read, 30 from cache".
// It is empty when no archive was opened.
func (s *runStats) archives() string {
	read, cached := s.read.Load(), s.cached.Load()
	if read+cached == 0 {
		return ""
	}
	return fmt.Sprintf("%d archives read, %d from cache", read, cached)
}

// report prints the archive summary and a warning for dropped projects.
func (s *runStats) report() {
	if a := s.archives(); a != "" {
		printDetail("%s", a)
	}
	if n := s.dropped.Load(); n > 0 {
		printWarning("%d project(s) dropped; rerun with --verbose for details", n)
	}
}
