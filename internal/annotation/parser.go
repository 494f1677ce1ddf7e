package annotation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Default parser settings.
const (
	DefaultMarker = "XXX"
	DefaultLabel  = "UNK"
	DefaultColor  = "#faa"
)

// delimiter separates plain parts from encoded entity parts after the marker
// has been expanded. It is an ASCII unit separator, which never appears in
// survey free text.
const delimiter = "\x1f"

// ErrMalformedSegment is returned when an encoded entity part cannot be
// decoded back into a (text, label, color) triple.
var ErrMalformedSegment = errors.New("malformed annotated segment")

// Kind distinguishes plain text from highlighted entities.
type Kind int

const (
	KindPlain Kind = iota
	KindEntity
)

// Segment is one unit of a rendered row: either plain text or a highlighted
// entity with a label caption and a background color.
type Segment struct {
	Kind Kind

	// Text is the displayed body.
	Text string

	// Label is the caption of an entity segment. Empty for plain segments.
	Label string

	// Background is the highlight color of an entity segment, e.g. "#faa".
	Background string
}

// Plain creates a plain text segment.
func Plain(text string) Segment {
	return Segment{Kind: KindPlain, Text: text}
}

// Entity creates a highlighted entity segment.
func Entity(text, label, background string) Segment {
	return Segment{Kind: KindEntity, Text: text, Label: label, Background: background}
}

// IsEntity reports whether the segment is a highlighted entity.
func (s Segment) IsEntity() bool {
	return s.Kind == KindEntity
}

// Parser turns row text into an ordered sequence of Segments.
//
// Every occurrence of Marker becomes an entity segment captioned with Label
// and highlighted with Color. Text between markers is kept as plain
// segments.
//
// Example:
//
//	p := NewParser()
//	segs, err := p.Parse("Call XXX tomorrow")
//	// segs = [Plain("Call "), Entity("XXX", "UNK", "#faa"), Plain(" tomorrow")]
type Parser struct {
	Marker string
	Label  string
	Color  string
}

// NewParser creates a Parser with the default marker, label and color.
func NewParser() *Parser {
	return &Parser{
		Marker: DefaultMarker,
		Label:  DefaultLabel,
		Color:  DefaultColor,
	}
}

// Contains reports whether text holds at least one marker.
func (p *Parser) Contains(text string) bool {
	return p.Marker != "" && strings.Contains(text, p.Marker)
}

// Count returns the number of marker occurrences in text.
func (p *Parser) Count(text string) int {
	if p.Marker == "" {
		return 0
	}
	return strings.Count(text, p.Marker)
}

// Parse splits text into plain and entity segments.
//
// This method performs the following steps:
//  1. Replaces each marker with a delimiter-wrapped encoded triple
//  2. Splits the result on the delimiter into alternating parts
//  3. Decodes every encoded part back into an entity segment
//
// Decoding is fail-soft: if an encoded part is malformed, Parse returns the
// segments decoded so far together with an error wrapping
// ErrMalformedSegment. Callers are expected to log the error and still
// render the partial result.
func (p *Parser) Parse(text string) ([]Segment, error) {
	if !p.Contains(text) {
		return []Segment{Plain(text)}, nil
	}

	parts := strings.Split(p.encode(text), delimiter)

	segments := make([]Segment, 0, len(parts))
	for i, part := range parts {
		// Even parts are reviewer text, odd parts come from encode
		if i%2 == 0 {
			if part != "" {
				segments = append(segments, Plain(part))
			}
			continue
		}

		part = strings.TrimLeft(part, " \t")
		if !strings.HasPrefix(part, "(") {
			return segments, fmt.Errorf("%w: part %d does not start with '('", ErrMalformedSegment, i)
		}

		fields, err := decodeTuple(part)
		if err != nil {
			return segments, fmt.Errorf("%w: part %d: %v", ErrMalformedSegment, i, err)
		}
		segments = append(segments, Entity(fields[0], fields[1], fields[2]))
	}

	return segments, nil
}

// encode expands every marker into " (marker, label, color) " between two
// delimiters. Fields are quoted without escaping, so a marker or label that
// contains a double quote produces a part that fails to decode.
func (p *Parser) encode(text string) string {
	encoded := fmt.Sprintf(`%s ("%s", "%s", "%s") %s`, delimiter, p.Marker, p.Label, p.Color, delimiter)
	return strings.ReplaceAll(text, p.Marker, encoded)
}

// decodeTuple parses a parenthesised list of exactly three double-quoted
// strings, e.g. ("XXX", "UNK", "#faa").
func decodeTuple(s string) ([3]string, error) {
	var out [3]string

	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return out, errors.New("not a parenthesised tuple")
	}
	rest := strings.TrimSpace(s[1 : len(s)-1])

	n := 0
	for rest != "" {
		if n == len(out) {
			return out, fmt.Errorf("more than %d fields", len(out))
		}

		quoted, err := strconv.QuotedPrefix(rest)
		if err != nil {
			return out, fmt.Errorf("field %d: %w", n, err)
		}
		value, err := strconv.Unquote(quoted)
		if err != nil {
			return out, fmt.Errorf("field %d: %w", n, err)
		}
		out[n] = value
		n++

		rest = strings.TrimSpace(rest[len(quoted):])
		if rest == "" {
			break
		}
		if !strings.HasPrefix(rest, ",") {
			return out, fmt.Errorf("expected ',' after field %d, got %q", n-1, rest)
		}
		rest = strings.TrimSpace(rest[1:])
	}

	if n != len(out) {
		return out, fmt.Errorf("got %d fields, want %d", n, len(out))
	}
	return out, nil
}

// Join concatenates segment bodies back into a single string.
func Join(segments []Segment) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
