//go:build windows

package nativelib

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// dlopen loads a dynamic library on Windows.
func dlopen(name string) (uintptr, error) {
	dll, err := windows.LoadDLL(name)
	if err != nil {
		return 0, fmt.Errorf("LoadDLL failed: %w", err)
	}
	return uintptr(dll.Handle), nil
}
