package nuget

import (
	"archive/zip"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/andriilab/sdv/pkg/cache"
	sdverr "github.com/andriilab/sdv/pkg/errors"
	"github.com/andriilab/sdv/pkg/idmap"
	"github.com/andriilab/sdv/pkg/observability"
)

const nuspecKeyType = "nuspec"

// NuspecReader returns the dependency ids a package archive declares,
// remembering results in a cache keyed by archive path, size and
// modification time.
type NuspecReader struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewNuspecReader creates a reader backed by c. A nil cache disables caching.
func NewNuspecReader(c cache.Cache, ttl time.Duration) *NuspecReader {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &NuspecReader{cache: c, ttl: ttl}
}

// DependencyIDs returns the ids of every dependency in every dependency
// group of the archive's .nuspec, deduplicated case-insensitively.
func (r *NuspecReader) DependencyIDs(ctx context.Context, archive string) ([]string, error) {
	info, err := os.Stat(archive)
	if err != nil {
		return nil, sdverr.Wrap(sdverr.ErrCodeFileNotFound, err, "package archive %s", archive)
	}
	key := cache.ArchiveKey(archive, info.Size(), info.ModTime())

	if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
		var ids []string
		if json.Unmarshal(data, &ids) == nil {
			observability.Cache().OnCacheHit(ctx, nuspecKeyType)
			return ids, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, nuspecKeyType)

	ids, err := ReadArchiveDependencies(archive)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(ids); err == nil {
		if r.cache.Set(ctx, key, data, r.ttl) == nil {
			observability.Cache().OnCacheSet(ctx, nuspecKeyType, len(data))
		}
	}
	return ids, nil
}

// ReadArchiveDependencies opens a .nupkg and parses its root .nuspec.
func ReadArchiveDependencies(archive string) ([]string, error) {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return nil, sdverr.Wrap(sdverr.ErrCodeExtractionFailed, err, "open package archive %s", archive)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if strings.Contains(f.Name, "/") || !strings.EqualFold(path.Ext(f.Name), ".nuspec") {
			continue
		}
		ids, err := readNuspecFile(f)
		if err != nil {
			return nil, sdverr.Wrap(sdverr.ErrCodeExtractionFailed, err, "read %s in %s", f.Name, archive)
		}
		return ids, nil
	}
	return nil, sdverr.New(sdverr.ErrCodeExtractionFailed, "no .nuspec found in %s", archive)
}

func readNuspecFile(f *zip.File) ([]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var doc nuspecDocument
	if err := xml.NewDecoder(rc).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode nuspec: %w", err)
	}
	return doc.dependencyIDs(), nil
}

// Element names carry no namespace so every nuspec schema revision matches.
type nuspecDocument struct {
	Metadata struct {
		Dependencies struct {
			Groups []struct {
				Dependencies []nuspecDependency `xml:"dependency"`
			} `xml:"group"`
			Dependencies []nuspecDependency `xml:"dependency"`
		} `xml:"dependencies"`
	} `xml:"metadata"`
}

type nuspecDependency struct {
	ID string `xml:"id,attr"`
}

func (d *nuspecDocument) dependencyIDs() []string {
	seen := idmap.NewSet()
	deps := d.Metadata.Dependencies
	add := func(list []nuspecDependency) {
		for _, dep := range list {
			if id := strings.TrimSpace(dep.ID); id != "" {
				seen.Add(id)
			}
		}
	}
	add(deps.Dependencies)
	for _, g := range deps.Groups {
		add(g.Dependencies)
	}
	return seen.Items()
}
