package nuget

import (
	"os"
	"path/filepath"
	"strings"
)

// PackagesEnv overrides the global package folder, as it does for NuGet.
const PackagesEnv = "NUGET_PACKAGES"

// PackageCache locates .nupkg archives on disk. Two layouts are searched in
// order:
//
//	{dir}/packages/{id}.{version}/{file}         project-local (packages.config era)
//	{GlobalRoot}/{id}/{version}/{file}           global cache, lower-cased
type PackageCache struct {
	GlobalRoot string
}

// NewPackageCache returns a cache rooted at root, or at
// [DefaultGlobalRoot] when root is empty.
func NewPackageCache(root string) *PackageCache {
	if root == "" {
		root = DefaultGlobalRoot()
	}
	return &PackageCache{GlobalRoot: root}
}

// DefaultGlobalRoot is $NUGET_PACKAGES, or ~/.nuget/packages.
func DefaultGlobalRoot() string {
	if env := os.Getenv(PackagesEnv); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".nuget", "packages")
	}
	return filepath.Join(home, ".nuget", "packages")
}

// Find returns the archive for libraryPath ("id/version") named file, looking
// first under dir's packages folder and then in the global cache.
func (c *PackageCache) Find(dir, libraryPath, file string) (string, bool) {
	local := filepath.Join(dir, "packages",
		strings.NewReplacer("/", ".", `\`, ".").Replace(libraryPath), file)
	if isFile(local) {
		return local, true
	}
	rel := filepath.Join(fixSeparators(libraryPath), file)
	global := filepath.Join(c.GlobalRoot, strings.ToLower(rel))
	if isFile(global) {
		return global, true
	}
	return "", false
}

// FindPackage looks up id at version and, failing that, at each of
// [AlternativeVersions]. It returns the archive path and the version
// spelling that matched.
func (c *PackageCache) FindPackage(dir, id, version string) (path, matched string, ok bool) {
	for _, v := range append([]string{version}, AlternativeVersions(version)...) {
		if p, ok := c.Find(dir, id+"/"+v, id+"."+v+".nupkg"); ok {
			return p, v, true
		}
	}
	return "", "", false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
