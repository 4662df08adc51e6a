package nativelib

import "runtime"

// Platform identifies an operating system / CPU architecture pair used to
// select a bundled native library variant.
type Platform struct {
	OS   string
	Arch string
}

// CurrentPlatform returns the platform the process is running on.
func CurrentPlatform() Platform {
	return Platform{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

// supported platform tags with a corresponding bundled library layout.
var supportedTags = map[Platform]string{
	{OS: "darwin", Arch: "amd64"}:  "darwin_amd64",
	{OS: "darwin", Arch: "arm64"}:  "darwin_arm64",
	{OS: "linux", Arch: "amd64"}:   "linux_amd64",
	{OS: "linux", Arch: "arm64"}:   "linux_arm64",
	{OS: "windows", Arch: "amd64"}: "windows_amd64",
	{OS: "windows", Arch: "arm64"}: "windows_arm64",
}

// Tag returns the canonical resource-path segment for the platform, or the
// empty string when no bundled library variant exists for it. Callers treat
// an empty tag as "no bundled resource, fall through to the system library".
func (p Platform) Tag() string {
	return supportedTags[p]
}

// LibraryName maps a base library name to the OS-canonical shared library
// file name, e.g. "crfsuite" becomes "libcrfsuite.so" on Linux.
func (p Platform) LibraryName(base string) string {
	switch p.OS {
	case "darwin", "ios":
		return "lib" + base + ".dylib"
	case "windows":
		return base + ".dll"
	default:
		return "lib" + base + ".so"
	}
}
