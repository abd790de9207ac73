package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	sdverr "github.com/andriilab/sdv/pkg/errors"
	"github.com/andriilab/sdv/pkg/graph"
	"github.com/andriilab/sdv/pkg/idmap"
)

// ReadJSON decodes a JSON graph from r.
//
// ReadJSON returns an error if:
//   - the JSON is malformed
//   - a node has an empty or duplicate id
//   - a node type is neither "project" nor "package"
//   - an edge references an unknown node id
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var g graph.Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, sdverr.Wrap(sdverr.ErrCodeInvalidManifest, err, "decode graph")
	}

	ids := idmap.NewSet()
	for _, n := range g.Nodes {
		if n.ID == "" {
			return nil, sdverr.New(sdverr.ErrCodeInvalidIdentifier, "node with empty id")
		}
		if !ids.Add(n.ID) {
			return nil, sdverr.New(sdverr.ErrCodeInvalidIdentifier, "node %s: duplicate id", n.ID)
		}
		if n.Type != graph.TypeProject && n.Type != graph.TypePackage {
			return nil, sdverr.New(sdverr.ErrCodeInvalidManifest, "node %s: unknown type %q", n.ID, n.Type)
		}
	}
	for _, e := range g.Edges {
		if !ids.Has(e.From) || !ids.Has(e.To) {
			return nil, sdverr.New(sdverr.ErrCodeInvalidManifest, "edge %s->%s: unknown node", e.From, e.To)
		}
	}
	return &g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
// It returns the same validation errors as [ReadJSON].
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
