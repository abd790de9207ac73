// Package nuget extracts per-project dependency data from NuGet manifests.
//
// Two manifest formats are understood:
//
//   - project.assets.json, the resolved lock manifest written by restore
//     (see [AssetsBuilder])
//   - packages.config, the legacy flat package list, whose graph is rebuilt
//     from the .nuspec of every package archive in the local caches
//     (see [PackagesBuilder])
//
// Both produce an [Extraction]. Builders are chosen by manifest file name with
// [Detect]; the first builder whose Supports method accepts the path wins.
package nuget

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	sdverr "github.com/andriilab/sdv/pkg/errors"
	"github.com/andriilab/sdv/pkg/idmap"
)

// Dependency is a package or project identifier with an opaque version.
type Dependency struct {
	ID      string `json:"id"`
	Version string `json:"version,omitempty"`
}

// Extraction is everything a manifest says about one project.
type Extraction struct {
	// Type names the builder that produced the extraction.
	Type string
	// Manifest is the path of the file that was read.
	Manifest string

	AllDependencies     *idmap.Map[Dependency]
	DirectDependencyIDs []string
	ChildrenOf          *idmap.Map[[]string]
	ReferencedProjects  []Dependency
}

func newExtraction(typ, manifest string) *Extraction {
	return &Extraction{
		Type:            typ,
		Manifest:        manifest,
		AllDependencies: idmap.New[Dependency](),
		ChildrenOf:      idmap.New[[]string](),
	}
}

// Children returns the child ids recorded for id, or nil.
func (e *Extraction) Children(id string) []string {
	children, _ := e.ChildrenOf.Get(id)
	return children
}

// Source locates a project's manifest and its surroundings.
type Source struct {
	ProjectName  string
	ManifestPath string
	ProjectFile  string
	SolutionPath string
}

// Builder turns a manifest into an Extraction.
type Builder interface {
	// Type returns the manifest type identifier.
	Type() string
	// Supports reports whether this builder handles the manifest path.
	Supports(manifestPath string) bool
	// Extract reads the manifest. Any error fails the project's extraction.
	Extract(ctx context.Context, src Source) (*Extraction, error)
}

// Detect returns the first builder supporting manifestPath.
func Detect(manifestPath string, builders ...Builder) (Builder, bool) {
	for _, b := range builders {
		if b.Supports(manifestPath) {
			return b, true
		}
	}
	return nil, false
}

// DefaultBuilders returns the lock-manifest and legacy-list builders, in
// that order, sharing one package cache and nuspec reader.
func DefaultBuilders(packages *PackageCache, nuspec *NuspecReader, logger *log.Logger) []Builder {
	return []Builder{
		&AssetsBuilder{Packages: packages, Logger: logger},
		&PackagesBuilder{Packages: packages, Nuspec: nuspec, Logger: logger},
	}
}

// ManifestNames lists the file names scanned for during solution discovery.
var ManifestNames = []string{AssetsFileName, PackagesFileName}

// splitKey splits an "id/version" composite key.
func splitKey(key string) (Dependency, error) {
	parts := strings.Split(key, "/")
	if len(parts) != 2 {
		return Dependency{}, sdverr.New(sdverr.ErrCodeInvalidManifest,
			"unexpected dependency %q: could not parse id and version", key)
	}
	return Dependency{ID: parts[0], Version: parts[1]}, nil
}

// fixSeparators converts either separator style to the host's.
func fixSeparators(path string) string {
	return filepath.FromSlash(strings.ReplaceAll(path, `\`, "/"))
}

func orDefault(l *log.Logger) *log.Logger {
	if l == nil {
		return log.Default()
	}
	return l
}
