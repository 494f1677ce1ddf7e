package annotation

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NoMarker(t *testing.T) {
	p := NewParser()

	inputs := []string{
		"",
		"plain text",
		"  leading whitespace is kept",
		"(looks like a tuple)",
		"SKIP",
		"xxx lowercase is not a marker",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			segs, err := p.Parse(in)
			require.NoError(t, err)
			if diff := cmp.Diff([]Segment{Plain(in)}, segs); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", in, diff)
			}
		})
	}
}

func TestParse_SingleMarker(t *testing.T) {
	p := NewParser()

	tests := []struct {
		name string
		text string
		want []Segment
	}{
		{
			name: "middle",
			text: "Call XXX tomorrow",
			want: []Segment{Plain("Call "), Entity("XXX", "UNK", "#faa"), Plain(" tomorrow")},
		},
		{
			name: "start",
			text: "XXX was great",
			want: []Segment{Entity("XXX", "UNK", "#faa"), Plain(" was great")},
		},
		{
			name: "end",
			text: "thanks to XXX",
			want: []Segment{Plain("thanks to "), Entity("XXX", "UNK", "#faa")},
		},
		{
			name: "only marker",
			text: "XXX",
			want: []Segment{Entity("XXX", "UNK", "#faa")},
		},
		{
			name: "parenthesis after marker stays plain",
			text: "XXX (the nice one)",
			want: []Segment{Entity("XXX", "UNK", "#faa"), Plain(" (the nice one)")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs, err := p.Parse(tt.text)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, segs); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}

			var plain strings.Builder
			entities := 0
			for _, s := range segs {
				if s.IsEntity() {
					entities++
					assert.Equal(t, "UNK", s.Label)
					continue
				}
				plain.WriteString(s.Text)
			}
			assert.Equal(t, 1, entities)
			assert.Equal(t, strings.Replace(tt.text, "XXX", "", 1), plain.String())
			assert.Equal(t, tt.text, Join(segs))
		})
	}
}

func TestParse_MultipleMarkers(t *testing.T) {
	p := NewParser()

	segs, err := p.Parse("a XXX b XXXXXX")
	require.NoError(t, err)

	want := []Segment{
		Plain("a "),
		Entity("XXX", "UNK", "#faa"),
		Plain(" b "),
		Entity("XXX", "UNK", "#faa"),
		Entity("XXX", "UNK", "#faa"),
	}
	if diff := cmp.Diff(want, segs); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, p.Count("a XXX b XXXXXX"))
}

func TestParse_CustomSettings(t *testing.T) {
	p := &Parser{Marker: "[REDACTED]", Label: "PII", Color: "#ff0"}

	segs, err := p.Parse("hi [REDACTED]!")
	require.NoError(t, err)
	assert.Equal(t, []Segment{Plain("hi "), Entity("[REDACTED]", "PII", "#ff0"), Plain("!")}, segs)
}

func TestParse_MalformedIsFailSoft(t *testing.T) {
	// A quote inside the marker breaks the encoded triple
	p := &Parser{Marker: `X"X`, Label: "UNK", Color: "#faa"}

	segs, err := p.Parse(`before X"X after`)
	require.ErrorIs(t, err, ErrMalformedSegment)
	assert.Equal(t, []Segment{Plain("before ")}, segs)
}

func TestParse_EmptyMarker(t *testing.T) {
	p := &Parser{Label: "UNK", Color: "#faa"}

	segs, err := p.Parse("anything")
	require.NoError(t, err)
	assert.Equal(t, []Segment{Plain("anything")}, segs)
	assert.False(t, p.Contains("anything"))
	assert.Zero(t, p.Count("anything"))
}

func TestDecodeTuple(t *testing.T) {
	tests := []struct {
		input   string
		want    [3]string
		wantErr bool
	}{
		{input: `("XXX", "UNK", "#faa")`, want: [3]string{"XXX", "UNK", "#faa"}},
		{input: `  ("a","b","c")  `, want: [3]string{"a", "b", "c"}},
		{input: `("a", "b")`, wantErr: true},
		{input: `("a", "b", "c", "d")`, wantErr: true},
		{input: `("a" "b", "c")`, wantErr: true},
		{input: `(a, b, c)`, wantErr: true},
		{input: `"a", "b", "c"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := decodeTuple(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
