package nuget

import (
	"context"
	"encoding/json"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	sdverr "github.com/andriilab/sdv/pkg/errors"
	"github.com/andriilab/sdv/pkg/idmap"
)

// AssetsFileName is the lock manifest written by restore into obj/.
const AssetsFileName = "project.assets.json"

const absentArchiveHint = "the package may live in another NuGet cache, such as the SDK fallback folder"

// AssetsBuilder reads project.assets.json lock manifests.
type AssetsBuilder struct {
	Packages *PackageCache
	Logger   *log.Logger
}

func (b *AssetsBuilder) Type() string { return AssetsFileName }

func (b *AssetsBuilder) Supports(manifestPath string) bool {
	return strings.HasSuffix(manifestPath, AssetsFileName)
}

// Extract reads the manifest. Libraries are visited in key order since JSON
// objects carry no order once decoded.
func (b *AssetsBuilder) Extract(ctx context.Context, src Source) (*Extraction, error) {
	data, err := os.ReadFile(src.ManifestPath)
	if err != nil {
		return nil, sdverr.Wrap(sdverr.ErrCodeExtractionFailed, err, "unable to read file %s", src.ManifestPath)
	}
	var assets assetsFile
	if err := json.Unmarshal(data, &assets); err != nil {
		return nil, sdverr.Wrap(sdverr.ErrCodeInvalidManifest, err, "project assets json not deserialized: %s", src.ManifestPath)
	}
	return b.extract(src.ManifestPath, &assets)
}

func (b *AssetsBuilder) extract(manifest string, assets *assetsFile) (*Extraction, error) {
	logger := orDefault(b.Logger)
	packages := b.Packages
	if packages == nil {
		packages = NewPackageCache("")
	}

	if assets.Project.Restore == nil || assets.Project.Restore.ProjectPath == "" {
		return nil, sdverr.New(sdverr.ErrCodeExtractionFailed, "packages path is missing in %s", manifest)
	}
	projectDir := filepath.Dir(fixSeparators(assets.Project.Restore.ProjectPath))

	ex := newExtraction(b.Type(), manifest)

	for _, name := range slices.Sorted(maps.Keys(assets.Libraries)) {
		lib := assets.Libraries[name]
		if lib.Type == "project" {
			dep, err := splitKey(name)
			if err != nil {
				return nil, err
			}
			ex.ReferencedProjects = append(ex.ReferencedProjects, dep)
			continue
		}

		if lib.Path == "" {
			return nil, sdverr.New(sdverr.ErrCodeInvalidManifest, "library %s path is missing", name)
		}
		file, err := nupkgFileName(lib)
		if err != nil {
			return nil, err
		}
		if _, ok := packages.Find(projectDir, lib.Path, file); !ok {
			if assets.hasTarget(lib.Path) {
				logger.Warn("Package archive not found in the NuGet cache, skipping",
					"library", name, "file", file, "hint", absentArchiveHint)
				continue
			}
			return nil, sdverr.New(sdverr.ErrCodePackageNotFound,
				"the file %s doesn't exist in the NuGet cache directory", file)
		}

		dep, err := splitKey(name)
		if err != nil {
			return nil, err
		}
		ex.AllDependencies.Set(dep.ID, dep)
	}

	direct := idmap.NewSet()
	for _, fw := range slices.Sorted(maps.Keys(assets.Project.Frameworks)) {
		for _, id := range slices.Sorted(maps.Keys(assets.Project.Frameworks[fw].Dependencies)) {
			direct.Add(id)
		}
	}
	ex.DirectDependencyIDs = direct.Items()

	for _, target := range slices.Sorted(maps.Keys(assets.Targets)) {
		entries := assets.Targets[target]
		for _, key := range slices.Sorted(maps.Keys(entries)) {
			dep, err := splitKey(key)
			if err != nil {
				return nil, err
			}
			ex.ChildrenOf.Set(dep.ID, slices.Sorted(maps.Keys(entries[key].Dependencies)))
		}
	}

	return ex, nil
}

// nupkgFileName derives the archive name from the "*.nupkg.sha512" entry of
// the library's file list.
func nupkgFileName(lib assetsLibrary) (string, error) {
	for _, f := range lib.Files {
		if strings.HasSuffix(f, "nupkg.sha512") {
			return strings.TrimSuffix(filepath.Base(f), ".sha512"), nil
		}
	}
	return "", sdverr.New(sdverr.ErrCodeInvalidManifest, "could not find nupkg file name for %s", lib.Path)
}

type assetsFile struct {
	Targets   map[string]map[string]assetsTarget `json:"targets"`
	Libraries map[string]assetsLibrary           `json:"libraries"`
	Project   struct {
		Restore *struct {
			ProjectPath string `json:"projectPath"`
		} `json:"restore"`
		Frameworks map[string]struct {
			Dependencies map[string]json.RawMessage `json:"dependencies"`
		} `json:"frameworks"`
	} `json:"project"`
}

type assetsTarget struct {
	Dependencies map[string]json.RawMessage `json:"dependencies"`
}

type assetsLibrary struct {
	Type  string   `json:"type"`
	Path  string   `json:"path"`
	Files []string `json:"files"`
}

// hasTarget reports whether key ("id/version") appears in any target,
// ignoring case.
func (a *assetsFile) hasTarget(key string) bool {
	for _, entries := range a.Targets {
		for k := range entries {
			if idmap.Equal(k, key) {
				return true
			}
		}
	}
	return false
}
