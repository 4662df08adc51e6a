package nativelib

import (
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Environment variables recognized by the loader. Each overrides the
// corresponding key from the bundled crfsuite.toml resource; caller-supplied
// options override both.
const (
	EnvUseSystemLib       = "CRFSUITE_USE_SYSTEM_LIB"
	EnvDisableBundledLibs = "CRFSUITE_DISABLE_BUNDLED_LIBS" // legacy alias for EnvUseSystemLib
	EnvLibraryPath        = "CRFSUITE_LIB_PATH"
	EnvLibraryName        = "CRFSUITE_LIB_NAME"
	EnvTempDir            = "CRFSUITE_TEMPDIR"
)

// configResource is an optional build-time defaults file embedded next to
// the bundled libraries.
const configResource = "libs/crfsuite.toml"

// Config controls how the native library is located and loaded.
type Config struct {
	// UseSystemLibrary skips explicit and bundled resolution entirely and
	// defers to the OS's standard dynamic-library search path.
	UseSystemLibrary bool `toml:"use_system_library"`

	// DisableBundledLibraries is a legacy alias for UseSystemLibrary,
	// preserved for backward compatibility.
	DisableBundledLibraries bool `toml:"disable_bundled_libraries"`

	// LibraryPath is a directory checked for an explicit native library file
	// before bundled resources are consulted.
	LibraryPath string `toml:"library_path"`

	// LibraryName is the file name looked for at LibraryPath and used when
	// requesting a system library. Defaults to the OS-canonical name for
	// "crfsuite".
	LibraryName string `toml:"library_name"`

	// TempDir is the destination for extracted bundled libraries. Defaults
	// to the platform temp directory.
	TempDir string `toml:"temp_directory"`
}

// Option overrides a single configuration value.
type Option func(*Config)

// WithSystemLibrary defers to the OS's own library search path, ignoring
// explicit paths and bundled resources.
func WithSystemLibrary() Option {
	return func(c *Config) { c.UseSystemLibrary = true }
}

// WithLibraryPath sets the directory checked for an explicit library file.
func WithLibraryPath(dir string) Option {
	return func(c *Config) { c.LibraryPath = dir }
}

// WithLibraryName sets the library file name to look for.
func WithLibraryName(name string) Option {
	return func(c *Config) { c.LibraryName = name }
}

// WithTempDir sets the directory bundled libraries are extracted into.
func WithTempDir(dir string) Option {
	return func(c *Config) { c.TempDir = dir }
}

// loadConfig assembles the effective configuration: bundled resource first,
// then environment variables, then caller overrides.
func loadConfig(fsys fs.FS, opts ...Option) Config {
	var cfg Config

	if data, err := fs.ReadFile(fsys, configResource); err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			log.Printf("nativelib: ignoring malformed %s: %v", configResource, err)
			cfg = Config{}
		}
	}

	applyEnv(&cfg)

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvUseSystemLib); v != "" {
		cfg.UseSystemLibrary = parseBool(v)
	}
	if v := os.Getenv(EnvDisableBundledLibs); v != "" {
		cfg.DisableBundledLibraries = parseBool(v)
	}
	if v := os.Getenv(EnvLibraryPath); v != "" {
		cfg.LibraryPath = v
	}
	if v := os.Getenv(EnvLibraryName); v != "" {
		cfg.LibraryName = v
	}
	if v := os.Getenv(EnvTempDir); v != "" {
		cfg.TempDir = v
	}
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// libraryName returns the configured library file name, or the OS-canonical
// name for the engine when none is set.
func (c Config) libraryName(p Platform) string {
	if c.LibraryName != "" {
		return c.LibraryName
	}
	return p.LibraryName(BaseName)
}
