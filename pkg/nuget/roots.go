package nuget

import "github.com/andriilab/sdv/pkg/idmap"

type dfsState struct {
	visited  bool
	notRoot  bool
	circular bool
}

// InferRoots returns the ids of all that are not reachable as a child of
// another id in all, plus every id that takes part in a cycle. Children
// missing from all are ignored. Roots are returned in the order of all.
func InferRoots(all *idmap.Map[Dependency], childrenOf *idmap.Map[[]string]) []string {
	state := idmap.New[*dfsState]()
	for _, id := range all.Keys() {
		state.Set(id, &dfsState{})
	}

	var walk func(id string, path *idmap.Set)
	walk = func(id string, path *idmap.Set) {
		cur, _ := state.Get(id)
		if cur.visited {
			return
		}
		children, _ := childrenOf.Get(id)
		for _, next := range children {
			if !all.Has(next) {
				continue
			}
			if path.Has(next) {
				// Every id on the path is part of the cycle.
				for _, onPath := range path.Items() {
					s, _ := state.Get(onPath)
					s.circular = true
				}
				continue
			}
			s, _ := state.Get(next)
			s.notRoot = true
			path.Add(next)
			walk(next, path)
			path.Remove(next)
		}
		cur.visited = true
	}

	for id, s := range state.All() {
		if !s.visited {
			walk(id, idmap.NewSet(id))
		}
	}

	var roots []string
	for id, s := range state.All() {
		if !s.notRoot || s.circular {
			roots = append(roots, id)
		}
	}
	return roots
}
