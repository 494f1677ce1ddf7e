// Package annotation converts review text into highlighted segments.
//
// A Parser finds every placeholder marker ("XXX" by default) and returns the
// text as an ordered list of plain segments and entity segments. Entity
// segments carry a caption ("UNK") and a background color used by the UI to
// draw a label chip:
//
//	p := annotation.NewParser()
//	segs, err := p.Parse("Spoke to XXX on XXX")
//	if err != nil {
//	    // segs still holds everything decoded before the failure
//	}
//
// Parsing never aborts a review: malformed parts truncate the result and are
// reported through ErrMalformedSegment.
package annotation
