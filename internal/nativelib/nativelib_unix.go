//go:build darwin || freebsd || linux

package nativelib

import "github.com/ebitengine/purego"

// dlopen loads a dynamic library on Unix-like systems. RTLD_GLOBAL so the
// engine's symbols resolve across subsequently registered functions.
func dlopen(name string) (uintptr, error) {
	return purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}
