package nativelib

import (
	"io/fs"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

const (
	metadataResource = "libs/engine.toml"
	markerResource   = "libs/VERSION"
	unknownVersion   = "unknown"
)

var (
	versionOnce sync.Once
	version     string
)

// Version returns the bundled engine version, resolved from the embedded
// metadata file, then the VERSION marker, then the literal "unknown". The
// value scopes extraction cache file names; it is available whether or not
// the library has been loaded.
//
// When both metadata sources are missing the cache key degrades to a
// non-version-discriminating name. Operators deploying multiple engine
// versions into a shared temp directory should set temp-directory per
// version instead of relying on the fallback.
func Version() string {
	versionOnce.Do(func() {
		version = resolveVersion(bundled)
	})
	return version
}

type engineMetadata struct {
	Version string `toml:"version"`
}

func resolveVersion(fsys fs.FS) string {
	if data, err := fs.ReadFile(fsys, metadataResource); err == nil {
		var meta engineMetadata
		if err := toml.Unmarshal(data, &meta); err == nil {
			if v := sanitizeVersion(meta.Version); v != "" {
				return v
			}
		}
	}
	if data, err := fs.ReadFile(fsys, markerResource); err == nil {
		if v := sanitizeVersion(string(data)); v != "" {
			return v
		}
	}
	return unknownVersion
}

// sanitizeVersion strips everything but digits, dots and milestone markers,
// e.g. "0.12-SNAPSHOT" becomes "0.12".
func sanitizeVersion(raw string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == 'M':
			return r
		default:
			return -1
		}
	}, strings.TrimSpace(raw))
}
