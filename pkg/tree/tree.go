// Package tree builds per-project dependency trees from manifest extractions.
//
// Trees are not shared: a package reachable along two paths is materialized
// twice, each copy expanded and filtered on its own path.
package tree

import (
	"github.com/charmbracelet/log"

	"github.com/andriilab/sdv/pkg/filter"
	"github.com/andriilab/sdv/pkg/idmap"
	"github.com/andriilab/sdv/pkg/nuget"
)

// Kind is a dependency kind. The values are bit flags so occurrences can be
// combined with a bitwise AND.
type Kind uint8

const (
	Project Kind = 1 << iota
	Package
)

func (k Kind) String() string {
	switch k {
	case Project:
		return "project"
	case Package:
		return "package"
	default:
		return "mixed"
	}
}

// Node is one occurrence of a dependency.
type Node struct {
	ID       string  `json:"id"`
	Version  string  `json:"version,omitempty"`
	Kind     Kind    `json:"kind"`
	Children []*Node `json:"children,omitempty"`
}

// Size returns the number of nodes in the subtree rooted at n.
func (n *Node) Size() int {
	size := 1
	for _, c := range n.Children {
		size += c.Size()
	}
	return size
}

// Builder builds dependency forests.
type Builder struct {
	Logger *log.Logger
}

// NewBuilder creates a tree builder.
func NewBuilder(logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{Logger: logger}
}

// Build returns the roots of a project's dependency forest: its referenced
// projects when cfg.IncludeDependentProjects is set, followed by one package
// tree per enabled direct dependency. A nil extraction yields no roots.
func (b *Builder) Build(ex *nuget.Extraction, cfg *filter.Config) []*Node {
	if ex == nil {
		return nil
	}

	var roots []*Node
	if cfg.IncludeDependentProjects {
		for _, p := range ex.ReferencedProjects {
			roots = append(roots, &Node{ID: p.ID, Version: p.Version, Kind: Project})
		}
	}

	w := &walker{Builder: b, ex: ex, cfg: cfg}
	for _, id := range ex.DirectDependencyIDs {
		if !w.enabled(id) {
			continue
		}
		dep, ok := ex.AllDependencies.Get(id)
		if !ok {
			b.Logger.Warn("Unexpected dependency found in root dependencies", "id", id)
			continue
		}
		roots = append(roots, w.expand(dep, idmap.NewSet(dep.ID)))
	}
	return roots
}

type walker struct {
	*Builder
	ex  *nuget.Extraction
	cfg *filter.Config
}

func (w *walker) enabled(id string) bool {
	if w.cfg.IsPackageEnabled(id) {
		return true
	}
	w.Logger.Debug("Package and its dependencies skipped by filter", "id", id)
	return false
}

// expand builds the package node for dep. path holds the ids from the root
// down to dep; a child already on it would close a cycle and is skipped.
func (w *walker) expand(dep nuget.Dependency, path *idmap.Set) *Node {
	n := &Node{ID: dep.ID, Version: dep.Version, Kind: Package}
	for _, childID := range w.ex.Children(dep.ID) {
		if !w.enabled(childID) {
			continue
		}
		child, ok := w.ex.AllDependencies.Get(childID)
		if !ok {
			w.Logger.Warn("Unexpected dependency found in children", "parent", dep.ID, "id", childID)
			continue
		}
		if !path.Add(child.ID) {
			w.Logger.Warn("Dependency cycle, not expanding again", "parent", dep.ID, "id", child.ID)
			continue
		}
		n.Children = append(n.Children, w.expand(child, path))
		path.Remove(child.ID)
	}
	return n
}
