package model

import (
	"errors"
	"testing"
)

func TestLabel_Value(t *testing.T) {
	tests := []struct {
		label  Label
		custom string
		want   string
	}{
		{LabelPerson, "", "PERSON"},
		{LabelDate, "", "DATE"},
		{LabelOrganisation, "", "ORGANISATION"},
		{LabelLocation, "", "LOCATION"},
		{LabelRemove, "ignored", ""},
		{LabelCustom, "Acme GmbH", "Acme GmbH"},
		{LabelCustom, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.label.String()+"/"+tt.custom, func(t *testing.T) {
			if got := tt.label.Value(tt.custom); got != tt.want {
				t.Errorf("%s.Value(%q) = %q, want %q", tt.label, tt.custom, got, tt.want)
			}
		})
	}
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		input  string
		want   Label
		wantOK bool
	}{
		{"PERSON", LabelPerson, true},
		{"date", LabelDate, true},
		{"Organization", LabelOrganisation, true},
		{" location ", LabelLocation, true},
		{"remove", LabelRemove, true},
		{"custom", LabelCustom, true},
		{"unknown", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseLabel(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseLabel(%q) = %v, %v, want %v, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNewDataset_UnknownColumn(t *testing.T) {
	_, err := NewDataset([]string{"id", "text"}, nil, "open_nps_reason")
	if err == nil {
		t.Fatal("NewDataset should fail when the text column is missing")
	}
}

func TestDataset_SetText(t *testing.T) {
	ds, err := NewDataset(
		[]string{"id", "open_nps_reason", "score"},
		[][]string{{"1", "hello XXX", "9"}, {"2", "clean", "7"}},
		"open_nps_reason",
	)
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}

	if err := ds.SetText(0, "hello PERSON"); err != nil {
		t.Fatalf("SetText: %v", err)
	}

	got, _ := ds.Text(0)
	if got != "hello PERSON" {
		t.Errorf("Text(0) = %q, want %q", got, "hello PERSON")
	}

	// Other columns are untouched
	rec := ds.Records()[0]
	if rec[0] != "1" || rec[2] != "9" {
		t.Errorf("Records()[0] = %v, other columns changed", rec)
	}
}

func TestDataset_OutOfRange(t *testing.T) {
	ds, _ := NewDataset([]string{"text"}, [][]string{{"a"}}, "text")

	if _, err := ds.Text(1); !errors.Is(err, ErrRowOutOfRange) {
		t.Errorf("Text(1) error = %v, want ErrRowOutOfRange", err)
	}
	if err := ds.SetText(-1, "x"); !errors.Is(err, ErrRowOutOfRange) {
		t.Errorf("SetText(-1) error = %v, want ErrRowOutOfRange", err)
	}
}

func TestDataset_PadsShortRecords(t *testing.T) {
	ds, _ := NewDataset([]string{"id", "text", "extra"}, [][]string{{"1", "a"}}, "text")

	rec := ds.Records()[0]
	if len(rec) != 3 {
		t.Fatalf("len(record) = %d, want 3", len(rec))
	}
	if rec[2] != "" {
		t.Errorf("padded cell = %q, want empty", rec[2])
	}
}

func TestDataset_RecordsIsCopy(t *testing.T) {
	ds, _ := NewDataset([]string{"text"}, [][]string{{"a"}}, "text")

	recs := ds.Records()
	recs[0][0] = "mutated"

	if got, _ := ds.Text(0); got != "a" {
		t.Errorf("Text(0) = %q after mutating Records() copy, want %q", got, "a")
	}
}
