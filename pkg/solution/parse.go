package solution

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	sdverr "github.com/andriilab/sdv/pkg/errors"
)

// Extension is the solution file extension.
const Extension = ".sln"

// ProjectExtensions are the MSBuild project file kinds that can own NuGet
// manifests.
var ProjectExtensions = []string{".csproj", ".fsproj", ".vbproj"}

// Declaration is one project entry of a solution file, as written.
type Declaration struct {
	Name string
	Path string // relative to the solution directory, host separators
}

// ValidatePath checks that path names an existing .sln file.
func ValidatePath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return sdverr.Wrap(sdverr.ErrCodeInvalidSolution, err, "solution %s does not exist", path)
	}
	if info.IsDir() {
		return sdverr.New(sdverr.ErrCodeInvalidSolution, "solution path %s is a directory", path)
	}
	if !strings.EqualFold(filepath.Ext(path), Extension) {
		return sdverr.New(sdverr.ErrCodeInvalidSolution, "%s is not a %s file", path, Extension)
	}
	return nil
}

// Blocks returns the raw project declaration blocks of a solution file. A
// block runs from a line starting with `Project("` to the next line that is
// exactly `EndProject`, so nested ProjectSection blocks stay inside it.
func Blocks(r io.Reader) ([]string, error) {
	var (
		blocks  []string
		current []string
		open    bool
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, `Project("`):
			open = true
			current = []string{line}
		case open && line == "EndProject":
			current = append(current, line)
			blocks = append(blocks, strings.Join(current, "\n"))
			open = false
			current = nil
		case open:
			current = append(current, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return blocks, nil
}

// ParseDeclaration extracts the project name and path from a declaration
// block, whose first line looks like
//
//	Project("{FAE04EC0-...}") = "Web", "src\Web\Web.csproj", "{GUID}"
func ParseDeclaration(block string) (Declaration, error) {
	header, _, _ := strings.Cut(block, "\n")
	_, rhs, ok := strings.Cut(header, "=")
	if !ok {
		return Declaration{}, sdverr.New(sdverr.ErrCodeInvalidSolution, "unexpected project line format: %s", header)
	}
	fields := strings.Split(rhs, ",")
	if len(fields) < 3 {
		return Declaration{}, sdverr.New(sdverr.ErrCodeInvalidSolution, "unexpected project information format: %s", rhs)
	}
	name := unquote(fields[0])
	path := fixSeparators(unquote(fields[1]))
	if name == "" || path == "" {
		return Declaration{}, sdverr.New(sdverr.ErrCodeInvalidSolution, "empty project name or path: %s", rhs)
	}
	return Declaration{Name: name, Path: path}, nil
}

// ParseDeclarations reads every project declaration. Malformed blocks are
// returned as errors alongside the well-formed declarations.
func ParseDeclarations(r io.Reader) ([]Declaration, []error, error) {
	blocks, err := Blocks(r)
	if err != nil {
		return nil, nil, err
	}
	var (
		decls []Declaration
		errs  []error
	)
	for _, b := range blocks {
		d, err := ParseDeclaration(b)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		decls = append(decls, d)
	}
	return decls, errs, nil
}

// IsProjectFile reports whether path has a supported project extension.
func IsProjectFile(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range ProjectExtensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}

func fixSeparators(path string) string {
	return filepath.FromSlash(strings.ReplaceAll(path, `\`, "/"))
}
