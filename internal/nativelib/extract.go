package nativelib

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
)

const copyChunkSize = 8 * 1024

// materialize copies a bundled library resource into targetDir under
// targetName and returns the resulting path. An existing file whose content
// digest matches the resource is returned unchanged; a mismatching one is
// deleted and re-extracted, since a stale, differently-versioned library
// must never be loaded by mistake.
//
// Within a process concurrent invocation is serialized by the bootstrap
// loader. Across processes sharing targetDir the digest check is the safety
// mechanism; the delete-then-rewrite path has a narrow last-writer-wins
// window, benign in practice because both writers carry identical bytes.
func materialize(fsys fs.FS, resourcePath, targetDir, targetName string) (string, error) {
	targetPath := filepath.Join(targetDir, targetName)

	if _, err := os.Stat(targetPath); err == nil {
		want, err := resourceDigest(fsys, resourcePath)
		if err != nil {
			return "", err
		}
		got, err := fileDigest(targetPath)
		if err != nil {
			return "", err
		}
		if want == got {
			return targetPath, nil
		}
		if err := os.Remove(targetPath); err != nil {
			return "", fmt.Errorf("remove stale native library %s: %w", targetPath, err)
		}
	}

	if err := extract(fsys, resourcePath, targetPath); err != nil {
		return "", err
	}

	// Mark the file loadable. Not required on every platform, so a failure
	// is logged rather than surfaced.
	if runtime.GOOS != "windows" {
		if err := os.Chmod(targetPath, 0o755); err != nil {
			log.Printf("nativelib: could not mark %s executable: %v", targetPath, err)
		}
	}
	return targetPath, nil
}

// extract stream-copies the resource to targetPath in fixed-size chunks.
func extract(fsys fs.FS, resourcePath, targetPath string) error {
	src, err := fsys.Open(resourcePath)
	if err != nil {
		return fmt.Errorf("open bundled library %s: %w", resourcePath, err)
	}
	defer src.Close()

	dst, err := os.Create(targetPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", targetPath, err)
	}
	if _, err := io.CopyBuffer(dst, src, make([]byte, copyChunkSize)); err != nil {
		dst.Close()
		return fmt.Errorf("extract %s to %s: %w", resourcePath, targetPath, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("extract %s to %s: %w", resourcePath, targetPath, err)
	}
	return nil
}

func resourceDigest(fsys fs.FS, resourcePath string) (string, error) {
	f, err := fsys.Open(resourcePath)
	if err != nil {
		return "", fmt.Errorf("open bundled library %s: %w", resourcePath, err)
	}
	defer f.Close()
	return digest(f)
}

func fileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return digest(f)
}

// digest computes the hex SHA-256 of a byte stream. The hash only needs to
// distinguish distinct library builds.
func digest(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("digest: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
