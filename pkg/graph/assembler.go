package graph

import (
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/andriilab/sdv/pkg/idmap"
	"github.com/andriilab/sdv/pkg/tree"
)

// ProjectTree is the dependency forest of one project.
type ProjectTree struct {
	Name  string
	Roots []*tree.Node
}

// =============================================================================
// Assembler
// =============================================================================

// Assembler accumulates project trees into a graph. It is not safe for
// concurrent use; one assembler serves one run.
type Assembler struct {
	logger *log.Logger
	labels []LabelRule
	nodes  *idmap.Map[*nodeState]
}

type nodeState struct {
	id            string
	acc           tree.Kind
	multiVersions bool
	edges         *idmap.Map[*Edge] // keyed by parent id
}

// NewAssembler creates an assembler applying labels to the final snapshot.
func NewAssembler(logger *log.Logger, labels []LabelRule) *Assembler {
	if logger == nil {
		logger = log.Default()
	}
	return &Assembler{
		logger: logger,
		labels: labels,
		nodes:  idmap.New[*nodeState](),
	}
}

// AddSolution folds the project trees of one solution into the graph. With
// merge set, all projects are represented by one node named after the
// solution and project-kind dependencies are skipped.
func (a *Assembler) AddSolution(solution string, projects []ProjectTree, merge bool) {
	for _, p := range projects {
		name := p.Name
		if merge {
			name = solution
		}
		a.node(name, tree.Project)
		a.fold(name, p.Roots, merge)
	}
}

func (a *Assembler) fold(parent string, deps []*tree.Node, merge bool) {
	for _, dep := range deps {
		if merge && dep.Kind == tree.Project {
			continue
		}
		n := a.node(dep.ID, dep.Kind)

		edge, ok := n.edges.Get(parent)
		if !ok {
			n.edges.Set(parent, &Edge{From: parent, To: dep.ID, Label: dep.Version})
		} else if !hasVersion(edge.Label, dep.Version) {
			edge.Label += VersionSeparator + dep.Version
			edge.HasMultipleVersions = true
			n.multiVersions = true
			a.logger.Warn("Multiple versions detected", "from", parent, "to", dep.ID, "versions", edge.Label)
		}

		a.fold(dep.ID, dep.Children, merge)
	}
}

// node returns the state for id, creating it on first sight, and folds kind
// into its type accumulator.
func (a *Assembler) node(id string, kind tree.Kind) *nodeState {
	n, _ := a.nodes.GetOrCreate(id, func() *nodeState {
		return &nodeState{id: id, acc: kind, edges: idmap.New[*Edge]()}
	})
	n.acc &= kind
	return n
}

func hasVersion(label, version string) bool {
	return slices.Contains(strings.Split(label, VersionSeparator), version)
}

// =============================================================================
// Snapshot
// =============================================================================

// Graph returns the current graph with labels applied. Nodes appear in
// first-seen order; edges are grouped by target node in the same order.
func (a *Assembler) Graph() *Graph {
	g := &Graph{Nodes: []Node{}, Edges: []Edge{}}
	for _, st := range a.nodes.Values() {
		n := Node{
			ID:                  st.id,
			Label:               st.id,
			Type:                typeOf(st.acc),
			HasMultipleVersions: st.multiVersions,
		}
		n.Label += labelsFor(a.labels, &n)
		g.Nodes = append(g.Nodes, n)
		for _, e := range st.edges.Values() {
			g.Edges = append(g.Edges, *e)
		}
	}
	return g
}
