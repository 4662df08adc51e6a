// Package nativelib locates and loads the native crfsuite engine library
// (crfsuite.dll, libcrfsuite.so, etc.) for the current platform, at most once
// per process.
//
// The library is searched for in the following order:
//
//  1. If use-system-library is set (or the legacy disable-bundled-libraries
//     alias), defer to the operating system's own dynamic library search path.
//  2. <library-path>/<library-name>, when that file exists on disk. Files
//     supplied this way are trusted as-is.
//  3. A library bundled with the binary, extracted into temp-directory and
//     reused across runs via a content digest check.
//
// When none of the tiers produces a file, the library is requested from the
// OS loader by its canonical name, which succeeds only if a system-installed
// copy exists.
package nativelib

import (
	"fmt"
	"io/fs"
	"sync"

	"golang.org/x/sync/singleflight"
)

// BaseName is the engine's base library name, mapped per platform to
// libcrfsuite.so, libcrfsuite.dylib or crfsuite.dll.
const BaseName = "crfsuite"

var (
	loadGroup singleflight.Group

	stateMu sync.Mutex
	loaded  bool
	handle  uintptr
)

// resources and osLoad are package variables so tests can substitute a
// synthetic bundle and a fake OS loader.
var resources fs.FS = bundled
var osLoad = dlopen

// Load makes sure the native crfsuite library is loaded into the process and
// returns its handle. Resolution, extraction and the OS-level load happen at
// most once; concurrent first callers block until one of them finishes and
// then share its outcome. A failed load is reported to every caller waiting
// on it but is never cached, so a later call can retry after the
// configuration has been fixed.
//
// Options affect only the load actually performed; once the library is
// loaded they are ignored.
func Load(opts ...Option) (uintptr, error) {
	stateMu.Lock()
	if loaded {
		h := handle
		stateMu.Unlock()
		return h, nil
	}
	stateMu.Unlock()

	v, err, _ := loadGroup.Do(BaseName, func() (interface{}, error) {
		// A previous flight may have finished between the fast path and Do.
		stateMu.Lock()
		if loaded {
			h := handle
			stateMu.Unlock()
			return h, nil
		}
		stateMu.Unlock()

		cfg := loadConfig(resources, opts...)
		platform := CurrentPlatform()

		libPath, err := resolve(cfg, platform, resources, Version())
		if err != nil {
			return nil, err
		}
		name := libPath
		if name == "" {
			// Nothing explicit or bundled; ask the OS loader by name.
			name = cfg.libraryName(platform)
		}

		h, err := osLoad(name)
		if err != nil {
			return nil, fmt.Errorf("load native crfsuite library %q: %w", name, err)
		}

		stateMu.Lock()
		handle = h
		loaded = true
		stateMu.Unlock()
		return h, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(uintptr), nil
}

// Loaded reports whether the native library has been loaded into the process.
func Loaded() bool {
	stateMu.Lock()
	defer stateMu.Unlock()
	return loaded
}
