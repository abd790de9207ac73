package nuget

import (
	"context"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	sdverr "github.com/andriilab/sdv/pkg/errors"
)

// PackagesFileName is the legacy flat package list.
const PackagesFileName = "packages.config"

// PackagesBuilder reads packages.config manifests. The file lists packages
// without their relations, so each package's archive is opened to read its
// declared dependencies, and the roots are inferred with [InferRoots].
type PackagesBuilder struct {
	Packages *PackageCache
	Nuspec   *NuspecReader
	Logger   *log.Logger
}

func (b *PackagesBuilder) Type() string { return PackagesFileName }

func (b *PackagesBuilder) Supports(manifestPath string) bool {
	return strings.HasSuffix(manifestPath, PackagesFileName)
}

// Extract resolves every listed package against the solution's packages
// folder and the global cache. Packages without an archive are left out with
// a warning. Project references come from the project file.
func (b *PackagesBuilder) Extract(ctx context.Context, src Source) (*Extraction, error) {
	logger := orDefault(b.Logger)
	packages := b.Packages
	if packages == nil {
		packages = NewPackageCache("")
	}
	nuspec := b.Nuspec
	if nuspec == nil {
		nuspec = NewNuspecReader(nil, 0)
	}

	list, err := readPackagesConfig(src.ManifestPath)
	if err != nil {
		return nil, err
	}

	ex := newExtraction(b.Type(), src.ManifestPath)
	dir := filepath.Dir(src.SolutionPath)

	for _, pkg := range list.Packages {
		if err := sdverr.ValidatePackageID(pkg.ID); err != nil {
			return nil, err
		}
		archive, matched, ok := packages.FindPackage(dir, pkg.ID, pkg.Version)
		if !ok {
			logger.Warn("NuGet package was not found in the NuGet cache",
				"id", pkg.ID, "version", pkg.Version)
			continue
		}
		if matched != pkg.Version {
			logger.Debug("Resolved package archive under another version spelling",
				"id", pkg.ID, "version", pkg.Version, "archive", matched)
		}
		children, err := nuspec.DependencyIDs(ctx, archive)
		if err != nil {
			return nil, err
		}
		ex.AllDependencies.Set(pkg.ID, Dependency{ID: pkg.ID, Version: pkg.Version})
		ex.ChildrenOf.Set(pkg.ID, children)
	}

	ex.DirectDependencyIDs = InferRoots(ex.AllDependencies, ex.ChildrenOf)

	refs, err := ProjectReferences(src.ProjectFile)
	if err != nil {
		logger.Warn("Unable to read project references", "project", src.ProjectName, "err", err)
	}
	ex.ReferencedProjects = refs

	return ex, nil
}

type packagesConfig struct {
	Packages []struct {
		ID      string `xml:"id,attr"`
		Version string `xml:"version,attr"`
	} `xml:"package"`
}

func readPackagesConfig(path string) (*packagesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return nil, sdverr.Wrap(sdverr.ErrCodeExtractionFailed, err, "unable to read file %s", path)
	}
	var cfg packagesConfig
	if err := xml.Unmarshal(data, &cfg); err != nil {
		return nil, sdverr.Wrap(sdverr.ErrCodeInvalidManifest, err, "parse %s", path)
	}
	return &cfg, nil
}

type projectFile struct {
	ItemGroups []struct {
		ProjectReferences []struct {
			Include string `xml:"Include,attr"`
			Name    string `xml:"Name"`
		} `xml:"ProjectReference"`
	} `xml:"ItemGroup"`
}

// ProjectReferences lists the <ProjectReference> items of an MSBuild project
// file. A reference without a <Name> is named after the referenced file.
func ProjectReferences(projectFilePath string) ([]Dependency, error) {
	data, err := os.ReadFile(projectFilePath)
	if err != nil {
		return nil, sdverr.Wrap(sdverr.ErrCodeFileNotFound, err, "unable to read file %s", projectFilePath)
	}
	var proj projectFile
	if err := xml.Unmarshal(data, &proj); err != nil {
		return nil, sdverr.Wrap(sdverr.ErrCodeInvalidProject, err, "parse %s", projectFilePath)
	}

	var refs []Dependency
	for _, group := range proj.ItemGroups {
		for _, ref := range group.ProjectReferences {
			name := strings.TrimSpace(ref.Name)
			if name == "" {
				base := filepath.Base(fixSeparators(ref.Include))
				name = strings.TrimSuffix(base, filepath.Ext(base))
			}
			if name != "" && name != "." {
				refs = append(refs, Dependency{ID: name})
			}
		}
	}
	return refs, nil
}
