// Package solution discovers the projects of a Visual Studio solution and
// attaches to each the dependency data of its NuGet manifest.
//
// Discovery reads the project declarations of the .sln file. A solution
// without declarations is treated as a directory holding exactly one project
// file. Manifests (project.assets.json, packages.config) are found by
// scanning the solution directory and matched to projects by path.
package solution

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/andriilab/sdv/pkg/filter"
	"github.com/andriilab/sdv/pkg/nuget"
	"github.com/andriilab/sdv/pkg/observability"
)

// Solution is a parsed solution and its surviving projects, in declaration
// order.
type Solution struct {
	Name     string
	Path     string
	Projects []*Project
}

// Project is a discovered project. Extraction is nil when no compatible
// manifest was found; such a project contributes no dependency data.
type Project struct {
	Name         string
	ProjectFile  string
	RootDir      string
	ManifestPath string
	Extraction   *nuget.Extraction
}

// Builder discovers solutions.
type Builder struct {
	Builders []nuget.Builder
	Logger   *log.Logger
}

// NewBuilder creates a solution builder that extracts manifests with the
// given builders, tried in order.
func NewBuilder(builders []nuget.Builder, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{Builders: builders, Logger: logger}
}

// Build discovers the projects of cfg.SolutionPath. Projects whose names
// cfg disables are skipped; projects whose extraction fails are dropped with
// a warning. Only an invalid solution path fails the build.
func (b *Builder) Build(ctx context.Context, cfg *filter.Config) (sol *Solution, err error) {
	if err := ValidatePath(cfg.SolutionPath); err != nil {
		return nil, err
	}
	path, err := filepath.Abs(cfg.SolutionPath)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Solution().OnSolutionStart(ctx, path)
	defer func() {
		n := 0
		if sol != nil {
			n = len(sol.Projects)
		}
		observability.Solution().OnSolutionComplete(ctx, path, n, time.Since(start), err)
	}()

	dir := filepath.Dir(path)
	manifests, err := ScanManifests(dir, nuget.ManifestNames)
	if err != nil {
		return nil, err
	}
	for _, m := range manifests {
		b.Logger.Info("Found", "manifest", m)
	}

	sol = &Solution{
		Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path: path,
	}
	l := &loader{Builder: b, ctx: ctx, solution: sol, manifests: manifests, cfg: cfg}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	decls, declErrs, err := ParseDeclarations(f)
	f.Close()
	if err != nil {
		return nil, err
	}
	for _, e := range declErrs {
		b.Logger.Error("Failed parsing project declaration", "solution", path, "err", e)
	}

	if len(decls) == 0 && len(declErrs) == 0 {
		l.loadSingle(dir)
		return sol, nil
	}
	for _, d := range decls {
		l.load(d.Name, filepath.Join(dir, d.Path))
	}
	return sol, nil
}

type loader struct {
	*Builder
	ctx       context.Context
	solution  *Solution
	manifests []string
	cfg       *filter.Config
}

func (l *loader) loadSingle(dir string) {
	files, err := projectFilesIn(dir)
	if err != nil || len(files) != 1 {
		l.Logger.Warn("Expected exactly one undeclared project in solution dir", "dir", dir, "found", len(files))
		return
	}
	base := filepath.Base(files[0])
	l.load(strings.TrimSuffix(base, filepath.Ext(base)), files[0])
}

func (l *loader) load(name, projectFile string) {
	if !IsProjectFile(projectFile) {
		l.Logger.Warn("Skipping a declaration without a project file", "project", name, "path", projectFile)
		return
	}
	if !l.cfg.IsPackageEnabled(name) {
		l.Logger.Debug("Project filtered out", "project", name)
		return
	}

	p := &Project{
		Name:        name,
		ProjectFile: projectFile,
		RootDir:     filepath.Dir(projectFile),
	}
	p.ManifestPath = matchManifest(l.manifests, p.RootDir, name)
	if p.ManifestPath == "" {
		l.Logger.Warn("Project dependencies were not found", "project", name)
		l.solution.Projects = append(l.solution.Projects, p)
		return
	}

	builder, ok := nuget.Detect(p.ManifestPath, l.Builders...)
	if !ok {
		l.Logger.Warn("Unsupported project dependencies", "project", name, "manifest", p.ManifestPath)
		l.solution.Projects = append(l.solution.Projects, p)
		return
	}
	l.Logger.Info("Found manifest for project", "type", builder.Type(), "project", name)

	ex, err := builder.Extract(l.ctx, nuget.Source{
		ProjectName:  name,
		ManifestPath: p.ManifestPath,
		ProjectFile:  projectFile,
		SolutionPath: l.solution.Path,
	})
	if err != nil {
		l.Logger.Warn("Dropping project: dependency extraction failed", "project", name, "err", err)
		observability.Solution().OnProjectDropped(l.ctx, l.solution.Path, name, err)
		return
	}
	p.Extraction = ex
	l.solution.Projects = append(l.solution.Projects, p)
}
