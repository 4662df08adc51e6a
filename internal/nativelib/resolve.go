package nativelib

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// resolve decides which native library file to load, walking the search
// tiers in strict order; the first match wins. An empty path with a nil
// error signals the caller to defer to the operating system's own library
// search path. Resolution-tier misses fall through to the next tier; only
// extraction failures are reported as errors.
func resolve(cfg Config, platform Platform, fsys fs.FS, version string) (string, error) {
	if cfg.UseSystemLibrary || cfg.DisableBundledLibraries {
		return "", nil
	}

	name := cfg.libraryName(platform)

	// Explicit directory. Caller-provided files are trusted as-is, no
	// extraction or digest check.
	if cfg.LibraryPath != "" {
		candidate := filepath.Join(cfg.LibraryPath, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	tag := platform.Tag()
	if tag == "" {
		// No bundled variant for this platform.
		return "", nil
	}

	resource := path.Join("libs", BaseName+"-"+version, tag, name)
	if _, err := fs.Stat(fsys, resource); err != nil {
		return "", nil
	}

	return materialize(fsys, resource, cfg.TempDir, BaseName+"-"+version+"-"+name)
}
