package nativelib

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func TestResolveVersionFromMetadata(t *testing.T) {
	fsys := fstest.MapFS{
		metadataResource: &fstest.MapFile{Data: []byte("version = \"0.12\"\n")},
		markerResource:   &fstest.MapFile{Data: []byte("9.99\n")},
	}
	assert.Equal(t, "0.12", resolveVersion(fsys))
}

func TestResolveVersionMarkerFallback(t *testing.T) {
	fsys := fstest.MapFS{
		markerResource: &fstest.MapFile{Data: []byte("0.12\n")},
	}
	assert.Equal(t, "0.12", resolveVersion(fsys))
}

func TestResolveVersionUnknown(t *testing.T) {
	assert.Equal(t, "unknown", resolveVersion(fstest.MapFS{}))
}

func TestResolveVersionSanitized(t *testing.T) {
	fsys := fstest.MapFS{
		metadataResource: &fstest.MapFile{Data: []byte("version = \"0.12-SNAPSHOT\"\n")},
	}
	assert.Equal(t, "0.12", resolveVersion(fsys))
}

func TestSanitizeVersion(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "0.12", want: "0.12"},
		{raw: " 0.12\n", want: "0.12"},
		{raw: "1.0M1", want: "1.0M1"},
		{raw: "v2.3.4", want: "2.3.4"},
		{raw: "garbage", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeVersion(tt.raw), "sanitizeVersion(%q)", tt.raw)
	}
}

func TestVersionFromEmbeddedBundle(t *testing.T) {
	// The repository ships metadata for engine 0.12.
	assert.Equal(t, "0.12", Version())
}
