package ioutils

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/handiism/deanon/internal/model"
	"golang.org/x/text/unicode/norm"
)

// ErrEmptyCSV is returned when an input file has no header row.
var ErrEmptyCSV = errors.New("empty CSV file")

// LoadDataset reads a CSV file with a header row into a Dataset.
//
// column selects the editable text column, either by header name or as
// "#N" for the N-th column (1-based). Header names are compared after
// stripping a UTF-8 BOM, NFKC normalization and case folding, so
// "\ufeffOpen_NPS_Reason" matches "open_nps_reason".
//
// The header itself is kept byte-for-byte so exports reproduce it.
func LoadDataset(path, column string) (*model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrEmptyCSV)
	}

	header := rows[0]
	idx, err := ResolveColumn(header, column)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	return model.NewDatasetAt(header, rows[1:], idx)
}

// ResolveColumn finds column in header and returns its index.
func ResolveColumn(header []string, column string) (int, error) {
	column = strings.TrimSpace(column)
	if column == "" {
		return -1, errors.New("no text column configured")
	}

	if strings.HasPrefix(column, "#") {
		n, err := strconv.Atoi(column[1:])
		if err != nil || n < 1 || n > len(header) {
			return -1, fmt.Errorf("column %s outside header of %d columns", column, len(header))
		}
		return n - 1, nil
	}

	want := normalizeHeader(column)
	for i, h := range header {
		if normalizeHeader(h) == want {
			return i, nil
		}
	}
	return -1, fmt.Errorf("text column %q not found in header %v", column, header)
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = norm.NFKC.String(h)
	return strings.ToLower(strings.TrimSpace(h))
}

// EncodeDataset serializes a Dataset as CSV, header first.
func EncodeDataset(ds *model.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(ds.Header()); err != nil {
		return nil, err
	}
	if err := w.WriteAll(ds.Records()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDataset writes a Dataset to path as CSV.
//
// The file is written atomically; an existing file at path is replaced.
func WriteDataset(path string, ds *model.Dataset) error {
	data, err := EncodeDataset(ds)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
