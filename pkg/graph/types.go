package graph

import (
	"github.com/andriilab/sdv/pkg/idmap"
	"github.com/andriilab/sdv/pkg/tree"
)

// Node types as serialized.
const (
	TypeProject = "project"
	TypePackage = "package"
)

// VersionSeparator joins the versions of a conflicting edge.
const VersionSeparator = " | "

// Graph is a finished, read-only snapshot of an assembled graph.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a unique package or project across the whole run.
type Node struct {
	ID                  string `json:"id"`
	Label               string `json:"label"`
	Type                string `json:"type"`
	HasMultipleVersions bool   `json:"multipleVersions"`
}

// IsProject reports whether every occurrence of the node was a project.
func (n *Node) IsProject() bool { return n.Type == TypeProject }

// Edge is a dependency of To on behalf of From.
type Edge struct {
	From                string `json:"from"`
	To                  string `json:"to"`
	Label               string `json:"label"`
	HasMultipleVersions bool   `json:"multipleVersions"`
}

// Node returns the node with the given id, ignoring case.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if idmap.Equal(n.ID, id) {
			return n, true
		}
	}
	return Node{}, false
}

// EdgesTo returns the edges pointing at id, ignoring case.
func (g *Graph) EdgesTo(id string) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if idmap.Equal(e.To, id) {
			out = append(out, e)
		}
	}
	return out
}

// Conflicts counts the edges carrying more than one version.
func (g *Graph) Conflicts() int {
	n := 0
	for _, e := range g.Edges {
		if e.HasMultipleVersions {
			n++
		}
	}
	return n
}

// typeOf reports the accumulated kind flags as a node type.
func typeOf(acc tree.Kind) string {
	if acc == tree.Project {
		return TypeProject
	}
	return TypePackage
}
