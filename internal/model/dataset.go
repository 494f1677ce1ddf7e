package model

import (
	"errors"
	"fmt"
)

// ErrRowOutOfRange is returned when a row index is outside 0..Len()-1.
var ErrRowOutOfRange = errors.New("row index out of range")

// Dataset is the in-memory table under review.
//
// Dataset keeps the header and every record in file order. Exactly one
// column, the text column, is editable, and only through SetText. Rows are
// never added or removed after construction.
//
// Example:
//
//	ds, err := NewDataset([]string{"id", "open_nps_reason"}, records, "open_nps_reason")
//	text, _ := ds.Text(0)
//	_ = ds.SetText(0, strings.Replace(text, "XXX", "PERSON", 1))
type Dataset struct {
	header     []string
	rows       [][]string
	textColumn int
}

// NewDataset creates a Dataset from a header and its records.
//
// textColumn must name one of the header columns. Records shorter than the
// header are padded with empty cells so every row can be written back with
// the original column layout.
func NewDataset(header []string, records [][]string, textColumn string) (*Dataset, error) {
	idx := -1
	for i, h := range header {
		if h == textColumn {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("text column %q not found in header", textColumn)
	}
	return NewDatasetAt(header, records, idx)
}

// NewDatasetAt is like NewDataset but takes the text column by index.
func NewDatasetAt(header []string, records [][]string, textColumn int) (*Dataset, error) {
	if textColumn < 0 || textColumn >= len(header) {
		return nil, fmt.Errorf("text column index %d outside header of %d columns", textColumn, len(header))
	}

	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(header))
		copy(row, rec)
		rows[i] = row
	}

	h := make([]string, len(header))
	copy(h, header)

	return &Dataset{header: h, rows: rows, textColumn: textColumn}, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Header returns a copy of the column names in file order.
func (d *Dataset) Header() []string {
	out := make([]string, len(d.header))
	copy(out, d.header)
	return out
}

// TextColumn returns the name of the editable column.
func (d *Dataset) TextColumn() string {
	return d.header[d.textColumn]
}

// Text returns the text column of row i.
func (d *Dataset) Text(i int) (string, error) {
	if i < 0 || i >= len(d.rows) {
		return "", fmt.Errorf("%w: %d (rows: %d)", ErrRowOutOfRange, i, len(d.rows))
	}
	return d.rows[i][d.textColumn], nil
}

// SetText replaces the text column of row i.
func (d *Dataset) SetText(i int, value string) error {
	if i < 0 || i >= len(d.rows) {
		return fmt.Errorf("%w: %d (rows: %d)", ErrRowOutOfRange, i, len(d.rows))
	}
	d.rows[i][d.textColumn] = value
	return nil
}

// Records returns a copy of all rows, header excluded.
func (d *Dataset) Records() [][]string {
	out := make([][]string, len(d.rows))
	for i, row := range d.rows {
		r := make([]string, len(row))
		copy(r, row)
		out[i] = r
	}
	return out
}
