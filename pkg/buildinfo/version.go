// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/andriilab/sdv/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/andriilab/sdv/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/andriilab/sdv/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/sdv
package buildinfo

import (
	"fmt"
	"runtime"
)

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// String returns the multi-line build description.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\ngo: %s %s/%s",
		Version, Commit, Date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Template returns the cobra version template.
func Template() string {
	return "{{.Name}} " + String() + "\n"
}

// IsRelease reports whether the binary was stamped with a version.
func IsRelease() bool { return Version != "dev" }
