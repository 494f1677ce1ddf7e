// Package ioutils provides file system utilities for the deanon review tool.
//
// This package contains functions for:
//   - Atomic file writing
//   - Filename sanitization
//   - Export file naming
//   - Directory creation
//   - CSV dataset loading and writing
package ioutils

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// ExportSuffix is appended to the timestamp of every export file name.
const ExportSuffix = "-anon-bearbeitet.csv"

// exportTimeLayout mirrors a Python datetime string ("2006-01-02 15:04:05.000000").
const exportTimeLayout = "2006-01-02 15:04:05.000000"

var (
	invalidChars   = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots   = regexp.MustCompile(`\.+$`)
	repeatedSpaces = regexp.MustCompile(`\s+`)
)

// WriteFileAtomic writes data to path so that readers see either the old or
// the new content, never a truncated file.
//
// The data is written to a temporary file in the same directory, synced and
// then renamed over path. The file is created with mode 0644.
//
// Example:
//
//	err := WriteFileAtomic("state_file.txt", []byte("42"))
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Remove the temp file on any failure path
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("2024-03-01 10:15:00.000000-anon-bearbeitet.csv")
//	// Returns "2024-03-01 10_15_00.000000-anon-bearbeitet.csv"
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpaces.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}

// ExportFileName returns the file name for an export taken at t.
func ExportFileName(t time.Time) string {
	return SanitizeFileName(t.Format(exportTimeLayout) + ExportSuffix)
}

// UniquePath returns path if nothing exists there yet, otherwise the first
// free variant with a numeric suffix before the extension ("name-2.csv").
func UniquePath(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	} else if err != nil {
		return "", err
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 2; i < 10000; i++ {
		candidate := fmt.Sprintf("%s-%d%s", base, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		} else if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("no free file name for %s", path)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
