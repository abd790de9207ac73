package nuget

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// writeNupkg writes a package archive whose nuspec declares deps in a single
// dependency group.
func writeNupkg(t *testing.T, path, id string, deps ...string) {
	t.Helper()
	var b strings.Builder
	for _, d := range deps {
		fmt.Fprintf(&b, `<dependency id="%s" version="1.0.0" />`, d)
	}
	nuspec := fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<package xmlns="http://schemas.microsoft.com/packaging/2013/05/nuspec.xsd">
  <metadata>
    <id>%s</id>
    <version>1.0.0</version>
    <dependencies>
      <group targetFramework=".NETStandard2.0">%s</group>
    </dependencies>
  </metadata>
</package>`, id, b.String())
	writeZip(t, path, map[string]string{
		id + ".nuspec":         nuspec,
		"lib/netstandard2.0/x": "binary",
		"[Content_Types].xml":  "<Types/>",
	})
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := io.WriteString(w, content); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// globalArchive returns the global-cache path of id at version.
func globalArchive(root, id, version string) string {
	lid := strings.ToLower(id)
	return filepath.Join(root, lid, version, lid+"."+version+".nupkg")
}

func quietLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = io.Discard
	}
	return log.New(w)
}
