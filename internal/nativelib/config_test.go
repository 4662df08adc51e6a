package nativelib

import (
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

// clearLoaderEnv makes sure ambient CRFSUITE_* variables do not leak into a
// test's effective configuration.
func clearLoaderEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvUseSystemLib, EnvDisableBundledLibs, EnvLibraryPath, EnvLibraryName, EnvTempDir} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearLoaderEnv(t)

	cfg := loadConfig(fstest.MapFS{})

	assert.False(t, cfg.UseSystemLibrary)
	assert.False(t, cfg.DisableBundledLibraries)
	assert.Empty(t, cfg.LibraryPath)
	assert.Empty(t, cfg.LibraryName)
	assert.Equal(t, os.TempDir(), cfg.TempDir)
}

func TestLoadConfigBundledResource(t *testing.T) {
	clearLoaderEnv(t)

	fsys := fstest.MapFS{
		configResource: &fstest.MapFile{Data: []byte("library_name = \"libcrf.so.2\"\ntemp_directory = \"/var/cache/crf\"\n")},
	}
	cfg := loadConfig(fsys)

	assert.Equal(t, "libcrf.so.2", cfg.LibraryName)
	assert.Equal(t, "/var/cache/crf", cfg.TempDir)
}

func TestLoadConfigEnvOverridesBundled(t *testing.T) {
	clearLoaderEnv(t)
	t.Setenv(EnvLibraryName, "libcrf-env.so")
	t.Setenv(EnvUseSystemLib, "true")

	fsys := fstest.MapFS{
		configResource: &fstest.MapFile{Data: []byte("library_name = \"libcrf-toml.so\"\n")},
	}
	cfg := loadConfig(fsys)

	assert.Equal(t, "libcrf-env.so", cfg.LibraryName)
	assert.True(t, cfg.UseSystemLibrary)
}

func TestLoadConfigOptionsOverrideEnv(t *testing.T) {
	clearLoaderEnv(t)
	t.Setenv(EnvLibraryPath, "/from/env")
	t.Setenv(EnvTempDir, "/tmp/from-env")

	cfg := loadConfig(fstest.MapFS{}, WithLibraryPath("/from/option"), WithTempDir("/tmp/from-option"))

	assert.Equal(t, "/from/option", cfg.LibraryPath)
	assert.Equal(t, "/tmp/from-option", cfg.TempDir)
}

func TestLoadConfigLegacyAlias(t *testing.T) {
	clearLoaderEnv(t)
	t.Setenv(EnvDisableBundledLibs, "1")

	cfg := loadConfig(fstest.MapFS{})

	assert.True(t, cfg.DisableBundledLibraries)
	assert.False(t, cfg.UseSystemLibrary)
}

func TestLoadConfigMalformedResourceIgnored(t *testing.T) {
	clearLoaderEnv(t)

	fsys := fstest.MapFS{
		configResource: &fstest.MapFile{Data: []byte("library_name = [not toml")},
	}
	cfg := loadConfig(fsys)

	assert.Empty(t, cfg.LibraryName)
}

func TestConfigLibraryName(t *testing.T) {
	linux := Platform{OS: "linux", Arch: "amd64"}

	cfg := Config{}
	assert.Equal(t, "libcrfsuite.so", cfg.libraryName(linux))

	cfg.LibraryName = "libmycrf.so"
	assert.Equal(t, "libmycrf.so", cfg.libraryName(linux))
}
