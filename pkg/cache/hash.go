package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ArchiveKey identifies the parsed contents of a package archive as
// "nuspec:<hash>". Size and modification time are part of the hash, so a
// replaced archive misses.
func ArchiveKey(path string, size int64, modTime time.Time) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%d\x00%d", path, size, modTime.UnixNano())
	return "nuspec:" + hex.EncodeToString(h.Sum(nil))
}
