// Package filter compiles wildcard patterns into identifier predicates and
// holds the include/exclude configuration applied while building dependency
// trees.
//
// Supported pattern shapes:
//
//	Newtonsoft.Json     exact match
//	Microsoft.*         prefix match
//	*.Abstractions      suffix match
//	*Logging*           substring match
//	System*Memory       prefix match on the leading segment
//
// A lone "*" is rejected with [ErrNoFilter], as is any other placement of
// wildcards. Matching is case-insensitive, like NuGet ids.
package filter

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"

	sdverr "github.com/andriilab/sdv/pkg/errors"
)

// Mask is the wildcard token.
const Mask = "*"

// ErrNoFilter is returned for the degenerate "*" pattern.
var ErrNoFilter = errors.New("pattern matches everything")

// Predicate reports whether an identifier matches.
type Predicate func(string) bool

// Compile turns a raw pattern into a Predicate. Blank patterns yield a nil
// predicate and no error so callers can skip them.
func Compile(pattern string) (Predicate, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, nil
	}

	fold := func(s string) string { return cases.Fold().String(s) }
	parts := strings.Split(fold(pattern), Mask)
	first, last := parts[0], parts[len(parts)-1]

	switch {
	case len(parts) == 1:
		return func(s string) bool { return fold(s) == first }, nil
	case len(parts) == 2 && first == "" && last == "":
		return nil, sdverr.Wrap(sdverr.ErrCodeInvalidPattern, ErrNoFilter, "unknown filter specified: %s", pattern)
	case len(parts) == 2 && first == "":
		return func(s string) bool { return strings.HasSuffix(fold(s), last) }, nil
	case len(parts) == 2:
		// "a*b": only the leading segment constrains the match; the pattern
		// itself always ends with its trailing segment.
		return func(s string) bool { return strings.HasPrefix(fold(s), first) }, nil
	case len(parts) == 3 && first == "" && last == "" && parts[1] == "":
		return nil, sdverr.Wrap(sdverr.ErrCodeInvalidPattern, ErrNoFilter, "unknown filter specified: %s", pattern)
	case len(parts) == 3 && first == "" && last == "":
		mid := parts[1]
		return func(s string) bool { return strings.Contains(fold(s), mid) }, nil
	default:
		return nil, sdverr.New(sdverr.ErrCodeInvalidPattern, "unknown filter specified: %s", pattern)
	}
}

// CompileAll compiles every pattern, dropping blank ones. The first invalid
// pattern aborts compilation.
func CompileAll(patterns []string) ([]Predicate, error) {
	var out []Predicate
	for _, p := range patterns {
		pred, err := Compile(p)
		if err != nil {
			return nil, err
		}
		if pred != nil {
			out = append(out, pred)
		}
	}
	return out, nil
}

// Any combines predicates with logical OR.
func Any(preds []Predicate, s string) bool {
	for _, p := range preds {
		if p(s) {
			return true
		}
	}
	return false
}
