// Package fileutil writes output files without leaving partial results behind.
package fileutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data to a temp file beside path and renames it into
// place. Parent directories are created.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	_, _, err := writeAtomic(path, mode, func(w io.Writer) (int64, error) {
		n, err := w.Write(data)
		return int64(n), err
	})
	return err
}

// CopyStreamVerified streams r into dst and returns the SHA256 digest (hex)
// and byte count of what landed on disk. The destination is re-read and
// removed when its digest does not match the stream.
func CopyStreamVerified(r io.Reader, dst string) (string, int64, error) {
	srcHasher := sha256.New()
	digest, written, err := writeAtomic(dst, 0o644, func(w io.Writer) (int64, error) {
		return io.Copy(w, io.TeeReader(r, srcHasher))
	})
	if err != nil {
		return "", 0, err
	}
	if want := hex.EncodeToString(srcHasher.Sum(nil)); want != digest {
		_ = os.Remove(dst)
		return "", 0, fmt.Errorf("copy hash mismatch: %s corrupted during copy", dst)
	}
	onDisk, err := FileSHA256(dst)
	if err != nil {
		return "", 0, err
	}
	if onDisk != digest {
		_ = os.Remove(dst)
		return "", 0, fmt.Errorf("copy hash mismatch: %s changed after rename", dst)
	}
	return digest, written, nil
}

// FileSHA256 returns the hex SHA256 digest of the file at path.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SHA256 returns the hex SHA256 digest of data.
func SHA256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func writeAtomic(path string, mode os.FileMode, fill func(io.Writer) (int64, error)) (string, int64, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	h := sha256.New()
	written, err := fill(io.MultiWriter(tmp, h))
	if err != nil {
		cleanup()
		return "", 0, fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		cleanup()
		return "", 0, fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", 0, fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return "", 0, fmt.Errorf("rename into %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), written, nil
}
