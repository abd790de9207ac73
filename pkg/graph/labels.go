package graph

import (
	"maps"
	"slices"
	"strings"

	"github.com/andriilab/sdv/pkg/filter"
	"github.com/andriilab/sdv/pkg/idmap"
)

// Special label keys selecting nodes by type.
const (
	KeyIsProject = "IsProject"
	KeyIsPackage = "IsPackage"
	KeyIsNuget   = "IsNuget"
)

// LabelRule appends Labels to every node its key matches.
type LabelRule struct {
	Key    string
	Labels []string
	match  func(*Node) bool
}

// Matches reports whether the rule applies to n.
func (r LabelRule) Matches(n *Node) bool { return r.match != nil && r.match(n) }

// CompileLabels builds label rules in key order. Blank keys and blank labels
// are dropped; an invalid pattern is a configuration error.
func CompileLabels(labels map[string][]string) ([]LabelRule, error) {
	var rules []LabelRule
	for _, raw := range slices.Sorted(maps.Keys(labels)) {
		var values []string
		for _, l := range labels[raw] {
			if strings.TrimSpace(l) != "" {
				values = append(values, l)
			}
		}
		key := strings.TrimSpace(raw)
		if key == "" || len(values) == 0 {
			continue
		}
		match, err := compileKey(key)
		if err != nil {
			return nil, err
		}
		rules = append(rules, LabelRule{Key: key, Labels: values, match: match})
	}
	return rules, nil
}

func compileKey(key string) (func(*Node) bool, error) {
	switch {
	case idmap.Equal(key, KeyIsProject):
		return func(n *Node) bool { return n.Type == TypeProject }, nil
	case idmap.Equal(key, KeyIsPackage), idmap.Equal(key, KeyIsNuget):
		return func(n *Node) bool { return n.Type == TypePackage }, nil
	}
	pred, err := filter.Compile(key)
	if err != nil {
		return nil, err
	}
	return func(n *Node) bool { return pred(n.Label) }, nil
}

// labelsFor concatenates the labels of every rule matching n.
func labelsFor(rules []LabelRule, n *Node) string {
	var b strings.Builder
	for _, r := range rules {
		if r.Matches(n) {
			for _, l := range r.Labels {
				b.WriteString(l)
			}
		}
	}
	return b.String()
}
