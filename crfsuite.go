// Package crfsuite provides Go bindings to the native CRFsuite sequence
// labeling engine. The platform-specific shared library is located,
// extracted and loaded on first use; see Load for the search order and the
// options that steer it.
package crfsuite

import (
	"github.com/gengoai/gocrfsuite/internal/ffi"
	"github.com/gengoai/gocrfsuite/internal/nativelib"
)

// LoadOption overrides a native library loader setting.
// This is a re-export of the internal loader's options for consumer
// convenience.
type LoadOption = nativelib.Option

var (
	// WithSystemLibrary defers to the operating system's own library search
	// path, skipping explicit paths and bundled resources.
	WithSystemLibrary = nativelib.WithSystemLibrary

	// WithLibraryPath sets a directory checked for an explicit native
	// library file before bundled resources are consulted.
	WithLibraryPath = nativelib.WithLibraryPath

	// WithLibraryName overrides the library file name, which defaults to
	// the OS-canonical name for "crfsuite".
	WithLibraryName = nativelib.WithLibraryName

	// WithTempDir sets the directory bundled libraries are extracted into.
	WithTempDir = nativelib.WithTempDir
)

// Load makes sure the native engine is loaded into the process. Calling it
// is optional; the first Tagger or Trainer loads on demand with default
// settings. The library is loaded at most once per process, so options are
// honored only by the call that actually performs the load. A failed load is
// reported but not cached: the call may be retried after the configuration
// is fixed.
func Load(opts ...LoadOption) error {
	_, err := nativelib.Load(opts...)
	return err
}

// Version returns the bundled engine version read from embedded metadata,
// or "unknown" when no metadata is present. It does not require the native
// library to be loaded.
func Version() string {
	return nativelib.Version()
}

// EngineVersion reports the loaded native engine's own version string,
// loading the library first if necessary.
func EngineVersion() (string, error) {
	return ffi.EngineVersion()
}
