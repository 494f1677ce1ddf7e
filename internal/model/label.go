package model

import "strings"

// Label is a replacement category applied to one marker occurrence.
//
// The fixed categories resolve to their own name, Remove resolves to the
// empty string and Custom resolves to whatever text the reviewer typed.
//
// Example:
//
//	LabelPerson.Value("")       // "PERSON"
//	LabelRemove.Value("")       // ""
//	LabelCustom.Value("Brand")  // "Brand"
type Label int

const (
	// LabelPerson replaces the marker with "PERSON".
	LabelPerson Label = iota

	// LabelDate replaces the marker with "DATE".
	LabelDate

	// LabelOrganisation replaces the marker with "ORGANISATION".
	LabelOrganisation

	// LabelLocation replaces the marker with "LOCATION".
	LabelLocation

	// LabelRemove deletes the marker.
	LabelRemove

	// LabelCustom replaces the marker with reviewer supplied text.
	LabelCustom
)

// FixedLabels lists the labels that need no reviewer input, in button order.
var FixedLabels = []Label{LabelPerson, LabelDate, LabelOrganisation, LabelLocation, LabelRemove}

// String returns the label name as shown on its button.
func (l Label) String() string {
	switch l {
	case LabelPerson:
		return "PERSON"
	case LabelDate:
		return "DATE"
	case LabelOrganisation:
		return "ORGANISATION"
	case LabelLocation:
		return "LOCATION"
	case LabelRemove:
		return "REMOVE"
	case LabelCustom:
		return "CUSTOM"
	default:
		return "UNKNOWN"
	}
}

// Value returns the text that replaces the marker.
// custom is only used by LabelCustom and is taken verbatim.
func (l Label) Value(custom string) string {
	switch l {
	case LabelRemove:
		return ""
	case LabelCustom:
		return custom
	default:
		return l.String()
	}
}

// ParseLabel converts a label name (case-insensitive) back into a Label.
func ParseLabel(name string) (Label, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "PERSON":
		return LabelPerson, true
	case "DATE":
		return LabelDate, true
	case "ORGANISATION", "ORGANIZATION":
		return LabelOrganisation, true
	case "LOCATION":
		return LabelLocation, true
	case "REMOVE":
		return LabelRemove, true
	case "CUSTOM":
		return LabelCustom, true
	}
	return 0, false
}
