package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/andriilab/sdv/pkg/cache"
	"github.com/andriilab/sdv/pkg/config"
	sdverr "github.com/andriilab/sdv/pkg/errors"
	"github.com/andriilab/sdv/pkg/graph"
	"github.com/andriilab/sdv/pkg/nuget"
)

type pkgRef struct{ id, version string }

// workspace lays out solutions on disk next to a global package cache.
type workspace struct {
	t      *testing.T
	root   string
	global string
}

func newWorkspace(t *testing.T) *workspace {
	return &workspace{t: t, root: t.TempDir(), global: t.TempDir()}
}

func (w *workspace) write(path string, data []byte) {
	w.t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		w.t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		w.t.Fatal(err)
	}
}

// solution writes name.sln declaring one restored project per entry of
// projects, each depending directly on its packages.
func (w *workspace) solution(name string, projects map[string][]pkgRef, order ...string) string {
	w.t.Helper()
	dir := filepath.Join(w.root, name)
	var sln strings.Builder
	sln.WriteString("Microsoft Visual Studio Solution File, Format Version 12.00\n")
	for _, proj := range order {
		file := filepath.Join(dir, proj, proj+".csproj")
		w.write(file, []byte("<Project />"))
		w.write(filepath.Join(dir, proj, "obj", nuget.AssetsFileName), w.assets(file, projects[proj]))
		sln.WriteString(`Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "` + proj + `", "` +
			proj + `\` + proj + `.csproj", "{00000000-0000-0000-0000-000000000000}"` + "\nEndProject\n")
	}
	path := filepath.Join(dir, name+".sln")
	w.write(path, []byte(sln.String()))
	return path
}

func (w *workspace) assets(projectFile string, refs []pkgRef) []byte {
	w.t.Helper()
	libraries := map[string]any{}
	targets := map[string]any{}
	direct := map[string]any{}
	for _, r := range refs {
		key := r.id + "/" + r.version
		lower := strings.ToLower(r.id)
		file := lower + "." + r.version + ".nupkg"
		libraries[key] = map[string]any{
			"type":  "package",
			"path":  lower + "/" + r.version,
			"files": []string{file + ".sha512", lower + ".nuspec"},
		}
		targets[key] = map[string]any{"type": "package"}
		direct[r.id] = map[string]any{"target": "Package"}
		w.write(filepath.Join(w.global, lower, r.version, file), []byte("nupkg"))
	}
	data, err := json.Marshal(map[string]any{
		"version":   3,
		"targets":   map[string]any{"net8.0": targets},
		"libraries": libraries,
		"project": map[string]any{
			"restore":    map[string]any{"projectPath": projectFile},
			"frameworks": map[string]any{"net8.0": map[string]any{"dependencies": direct}},
		},
	})
	if err != nil {
		w.t.Fatal(err)
	}
	return data
}

func newTestRunner() *Runner {
	return NewRunner(cache.NewMemoryCache(), log.New(io.Discard))
}

func TestRunMergesSharedPackages(t *testing.T) {
	w := newWorkspace(t)
	json13 := pkgRef{"Newtonsoft.Json", "13.0.1"}
	shop := w.solution("Shop", map[string][]pkgRef{"Web": {json13}}, "Web")
	admin := w.solution("Admin", map[string][]pkgRef{"Portal": {json13}}, "Portal")

	res, err := newTestRunner().Run(context.Background(), Request{
		Solutions:    []string{shop, admin},
		PackageCache: w.global,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	n, ok := res.Graph.Node("Newtonsoft.Json")
	if !ok {
		t.Fatal("Newtonsoft.Json node missing")
	}
	if n.HasMultipleVersions || n.Type != graph.TypePackage {
		t.Errorf("node = %+v, want single-version package", n)
	}
	edges := res.Graph.EdgesTo("Newtonsoft.Json")
	if len(edges) != 2 {
		t.Fatalf("EdgesTo() = %d edges, want 2", len(edges))
	}
	for _, e := range edges {
		if e.Label != "13.0.1" || e.HasMultipleVersions {
			t.Errorf("edge %+v, want label 13.0.1 without conflict", e)
		}
	}
	if len(res.Graph.Nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(res.Graph.Nodes))
	}
	if res.Stats.Solutions != 2 || res.Stats.Projects != 2 || res.Stats.Conflicts != 0 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.RunID == "" {
		t.Error("RunID is empty")
	}
}

func TestRunMergeProjectsRecordsConflicts(t *testing.T) {
	w := newWorkspace(t)
	shop := w.solution("Shop", map[string][]pkgRef{
		"Web": {{"Newtonsoft.Json", "13.0.1"}},
		"Api": {{"Newtonsoft.Json", "12.0.3"}},
	}, "Web", "Api")

	res, err := newTestRunner().Run(context.Background(), Request{
		Solutions:     []string{shop},
		MergeProjects: true,
		PackageCache:  w.global,
		Labels:        map[string][]string{"IsProject": {" (solution)"}},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	edges := res.Graph.EdgesTo("Newtonsoft.Json")
	if len(edges) != 1 {
		t.Fatalf("EdgesTo() = %d edges, want 1", len(edges))
	}
	if e := edges[0]; e.From != "Shop" || e.Label != "13.0.1 | 12.0.3" || !e.HasMultipleVersions {
		t.Errorf("edge = %+v", e)
	}
	sol, ok := res.Graph.Node("Shop")
	if !ok || sol.Label != "Shop (solution)" {
		t.Errorf("Shop node = %+v", sol)
	}
	if res.Stats.Conflicts != 1 {
		t.Errorf("Conflicts = %d, want 1", res.Stats.Conflicts)
	}
}

func TestRunExcludeFilter(t *testing.T) {
	w := newWorkspace(t)
	shop := w.solution("Shop", map[string][]pkgRef{
		"Web": {{"Newtonsoft.Json", "13.0.1"}, {"Microsoft.Extensions.Logging", "8.0.0"}},
	}, "Web")

	res, err := newTestRunner().Run(context.Background(), Request{
		Solutions:    []string{shop},
		Exclude:      []string{"microsoft.*"},
		PackageCache: w.global,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if _, ok := res.Graph.Node("Microsoft.Extensions.Logging"); ok {
		t.Error("excluded package present in graph")
	}
	if _, ok := res.Graph.Node("Newtonsoft.Json"); !ok {
		t.Error("Newtonsoft.Json missing from graph")
	}
}

func TestRunConfigurationErrors(t *testing.T) {
	w := newWorkspace(t)
	shop := w.solution("Shop", map[string][]pkgRef{"Web": nil}, "Web")

	tests := []struct {
		name string
		req  Request
		code sdverr.Code
	}{
		{"no solutions", Request{}, sdverr.ErrCodeInvalidSolution},
		{"directory", Request{Solutions: []string{shop, w.root}}, sdverr.ErrCodeInvalidSolution},
		{"wrong extension", Request{Solutions: []string{filepath.Join(filepath.Dir(shop), "Web", "Web.csproj")}}, sdverr.ErrCodeInvalidSolution},
		{"bad pattern", Request{Solutions: []string{shop}, Include: []string{"*"}}, sdverr.ErrCodeInvalidPattern},
		{"bad label", Request{Solutions: []string{shop}, Labels: map[string][]string{"a*b*c": {"x"}}}, sdverr.ErrCodeInvalidPattern},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestRunner().Run(context.Background(), tt.req)
			if !sdverr.Is(err, tt.code) {
				t.Errorf("Run() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRunCancelled(t *testing.T) {
	w := newWorkspace(t)
	shop := w.solution("Shop", map[string][]pkgRef{"Web": nil}, "Web")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newTestRunner().Run(ctx, Request{Solutions: []string{shop}}); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestTrees(t *testing.T) {
	w := newWorkspace(t)
	shop := w.solution("Shop", map[string][]pkgRef{
		"Web": {{"Serilog", "3.1.1"}},
		"Api": nil,
	}, "Web", "Api")

	sol, trees, err := newTestRunner().Trees(context.Background(), Request{PackageCache: w.global}, shop)
	if err != nil {
		t.Fatalf("Trees() error = %v", err)
	}
	if sol.Name != "Shop" || len(trees) != 2 {
		t.Fatalf("Trees() = %s with %d trees", sol.Name, len(trees))
	}
	if len(trees[0].Roots) != 1 || trees[0].Roots[0].ID != "Serilog" {
		t.Errorf("Web roots = %+v", trees[0].Roots)
	}
	if len(trees[1].Roots) != 0 {
		t.Errorf("Api roots = %+v, want none", trees[1].Roots)
	}
}

func TestRequestFromConfig(t *testing.T) {
	cfg := config.Config{
		Solutions:       []string{"a.sln"},
		Exclude:         []string{"*.Tests"},
		IncludeProjects: true,
		MergeProjects:   true,
	}
	req := RequestFromConfig(cfg)
	if req.Solutions[0] != "a.sln" || !req.IncludeProjects || !req.MergeProjects {
		t.Errorf("RequestFromConfig() = %+v", req)
	}

	fc, err := req.filter("a.sln")
	if err != nil {
		t.Fatal(err)
	}
	if fc.IncludeDependentProjects {
		t.Error("IncludeDependentProjects should be off when merging projects")
	}
}
