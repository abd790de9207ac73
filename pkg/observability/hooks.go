// Package observability lets a host program watch the analyzer at work.
//
// Library code reports events to whatever hooks are registered; by default
// those do nothing. The CLI installs hooks that log at debug level and
// count archive cache use for its summary line:
//
//	restore := observability.Install(myHooks)
//	defer restore()
//
// Install registers a value for every hook interface it implements, so one
// type can watch both solutions and the cache.
package observability

import (
	"context"
	"sync"
	"time"
)

// SolutionHooks observes solution analysis.
type SolutionHooks interface {
	// OnSolutionStart fires before a solution file is parsed.
	OnSolutionStart(ctx context.Context, path string)
	// OnSolutionComplete fires once the solution's projects were processed.
	// projectCount counts projects kept, not dropped ones.
	OnSolutionComplete(ctx context.Context, path string, projectCount int, duration time.Duration, err error)
	// OnProjectDropped fires when a project's manifest could not be
	// extracted and the project was left out.
	OnProjectDropped(ctx context.Context, solution, project string, err error)
}

// CacheHooks observes the archive cache. kind names what was cached, for
// example "nuspec".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, size int)
}

// NoopSolutionHooks ignores every event. Embed it to implement only some
// methods.
type NoopSolutionHooks struct{}

func (NoopSolutionHooks) OnSolutionStart(context.Context, string)                               {}
func (NoopSolutionHooks) OnSolutionComplete(context.Context, string, int, time.Duration, error) {}
func (NoopSolutionHooks) OnProjectDropped(context.Context, string, string, error)               {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var registry = struct {
	sync.RWMutex
	solution SolutionHooks
	cache    CacheHooks
}{solution: NoopSolutionHooks{}, cache: NoopCacheHooks{}}

// SetSolutionHooks replaces the solution hooks. Nil is ignored.
func SetSolutionHooks(h SolutionHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.solution = h
	registry.Unlock()
}

// SetCacheHooks replaces the cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.cache = h
	registry.Unlock()
}

// Solution returns the current solution hooks.
func Solution() SolutionHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.solution
}

// Cache returns the current cache hooks.
func Cache() CacheHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.cache
}

// Install registers h as SolutionHooks and CacheHooks where it implements
// them, and returns a function restoring the hooks it replaced.
func Install(h any) (restore func()) {
	registry.Lock()
	defer registry.Unlock()

	prevSolution, prevCache := registry.solution, registry.cache
	if s, ok := h.(SolutionHooks); ok {
		registry.solution = s
	}
	if c, ok := h.(CacheHooks); ok {
		registry.cache = c
	}
	return func() {
		registry.Lock()
		registry.solution, registry.cache = prevSolution, prevCache
		registry.Unlock()
	}
}

// Reset restores the no-op hooks.
func Reset() {
	registry.Lock()
	registry.solution, registry.cache = NoopSolutionHooks{}, NoopCacheHooks{}
	registry.Unlock()
}
