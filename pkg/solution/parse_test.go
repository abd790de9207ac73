package solution

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	sdverr "github.com/andriilab/sdv/pkg/errors"
)

const sampleSolution = `
Microsoft Visual Studio Solution File, Format Version 12.00
# Visual Studio Version 17
Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "Web", "src\Web\Web.csproj", "{A1}"
EndProject
Project("{2150E333-8FDC-42A3-9474-1A3956D46DE8}") = "Solution Items", "Solution Items", "{B2}"
	ProjectSection(SolutionItems) = preProject
		README.md = README.md
	EndProjectSection
EndProject
Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "Core", "src/Core/Core.csproj", "{C3}"
EndProject
Global
	GlobalSection(SolutionConfigurationPlatforms) = preSolution
		Debug|Any CPU = Debug|Any CPU
	EndGlobalSection
EndGlobal
`

func TestParseDeclarations(t *testing.T) {
	decls, errs, err := ParseDeclarations(strings.NewReader(sampleSolution))
	if err != nil {
		t.Fatalf("ParseDeclarations() error = %v", err)
	}
	if len(errs) != 0 {
		t.Errorf("ParseDeclarations() errs = %v", errs)
	}

	want := []Declaration{
		{Name: "Web", Path: filepath.Join("src", "Web", "Web.csproj")},
		{Name: "Solution Items", Path: "Solution Items"},
		{Name: "Core", Path: filepath.Join("src", "Core", "Core.csproj")},
	}
	if !slices.Equal(decls, want) {
		t.Errorf("ParseDeclarations() = %v, want %v", decls, want)
	}
}

func TestBlocksKeepsNestedSections(t *testing.T) {
	blocks, err := Blocks(strings.NewReader(sampleSolution))
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 3 {
		t.Fatalf("len(Blocks()) = %d, want 3", len(blocks))
	}
	if !strings.Contains(blocks[1], "EndProjectSection") {
		t.Errorf("block 1 = %q, want nested section included", blocks[1])
	}
}

func TestParseDeclarationErrors(t *testing.T) {
	tests := []struct {
		name  string
		block string
	}{
		{"no equals", `Project("{X}") "Web", "Web.csproj", "{A}"`},
		{"too few fields", `Project("{X}") = "Web", "Web.csproj"`},
		{"empty name", `Project("{X}") = "", "Web.csproj", "{A}"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDeclaration(tt.block)
			if !sdverr.Is(err, sdverr.ErrCodeInvalidSolution) {
				t.Errorf("ParseDeclaration() error = %v, want %s", err, sdverr.ErrCodeInvalidSolution)
			}
		})
	}
}

func TestParseDeclarationsCollectsMalformed(t *testing.T) {
	sln := `Project("{X}") = "Good", "Good.csproj", "{A}"
EndProject
Project("{X}") "Bad"
EndProject
`
	decls, errs, err := ParseDeclarations(strings.NewReader(sln))
	if err != nil {
		t.Fatal(err)
	}
	if len(decls) != 1 || decls[0].Name != "Good" {
		t.Errorf("decls = %v, want [Good]", decls)
	}
	if len(errs) != 1 {
		t.Errorf("len(errs) = %d, want 1", len(errs))
	}
}

func TestValidatePath(t *testing.T) {
	dir := t.TempDir()
	sln := filepath.Join(dir, "App.sln")
	txt := filepath.Join(dir, "App.txt")
	for _, p := range []string{sln, txt} {
		if err := os.WriteFile(p, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	slnDir := filepath.Join(dir, "folder.sln")
	if err := os.Mkdir(slnDir, 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid", sln, false},
		{"missing", filepath.Join(dir, "None.sln"), true},
		{"directory", slnDir, true},
		{"wrong extension", txt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !sdverr.IsConfiguration(err) {
				t.Errorf("ValidatePath() error = %v, want a configuration error", err)
			}
		})
	}
}

func TestIsProjectFile(t *testing.T) {
	tests := map[string]bool{
		"Web.csproj":     true,
		"Lib.FSPROJ":     true,
		"Old.vbproj":     true,
		"Solution Items": false,
		"Db.sqlproj":     false,
	}
	for path, want := range tests {
		if got := IsProjectFile(path); got != want {
			t.Errorf("IsProjectFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestMatchManifest(t *testing.T) {
	sep := string(filepath.Separator)
	root := filepath.Join(sep+"repo", "src", "Web")
	manifests := []string{
		filepath.Join(sep+"repo", "src", "WebApi", "obj", "project.assets.json"),
		filepath.Join(sep+"repo", "src", "Web", "obj", "project.assets.json"),
		filepath.Join(sep+"repo", "legacy", "Core", "packages.config"),
	}

	if got := matchManifest(manifests, root, "Web"); got != manifests[1] {
		t.Errorf("matchManifest(root) = %q, want %q", got, manifests[1])
	}
	if got := matchManifest(manifests, filepath.Join(sep+"elsewhere"), "Core"); got != manifests[2] {
		t.Errorf("matchManifest(name) = %q, want %q", got, manifests[2])
	}
	if got := matchManifest(manifests, filepath.Join(sep+"elsewhere"), "Missing"); got != "" {
		t.Errorf("matchManifest(missing) = %q, want empty", got)
	}
}
