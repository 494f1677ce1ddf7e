package review

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	ioutils "github.com/handiism/deanon/internal/io"
)

// CursorFile persists the review cursor as plain decimal text.
//
// An empty or missing file means the review has not started (cursor 0).
// Saves go through ioutils.WriteFileAtomic, so a crash while saving leaves
// the previous value in place instead of an empty file.
type CursorFile struct {
	path string
}

// NewCursorFile creates a CursorFile backed by path.
func NewCursorFile(path string) *CursorFile {
	return &CursorFile{path: path}
}

// Path returns the backing file path.
func (c *CursorFile) Path() string {
	return c.path
}

// Load reads the persisted cursor.
func (c *CursorFile) Load() (int, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read cursor file: %w", err)
	}

	// Only the first line is significant
	line, _, _ := strings.Cut(string(data), "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("parse cursor file %s: %w", c.path, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("parse cursor file %s: negative cursor %d", c.path, n)
	}
	return n, nil
}

// Save replaces the persisted cursor with n.
func (c *CursorFile) Save(n int) error {
	if n < 0 {
		return fmt.Errorf("save cursor: negative cursor %d", n)
	}
	if err := ioutils.WriteFileAtomic(c.path, []byte(strconv.Itoa(n))); err != nil {
		return fmt.Errorf("save cursor: %w", err)
	}
	return nil
}
