// Package review implements the review session state machine.
//
// A Session walks a model.Dataset row by row. Rows without a marker are
// skipped automatically; rows with a marker wait for the reviewer to pick a
// label. The cursor is persisted after every skip so a review can be resumed
// later.
//
// # Host Loop
//
// Operations return a Result instead of triggering a redraw themselves. A
// host calls Settle after every operation whose Result has Rerender set:
//
//	res, err := session.ApplyLabel(model.LabelDate, "")
//	if err != nil {
//	    logger.Warn("apply label", zap.Error(err))
//	}
//	if res.Rerender {
//	    session.Settle()
//	    redraw()
//	}
//
// # States
//
//   - StateAwaitingInput: the active row contains a marker
//   - StateResolved: the active row is clean and will be skipped
//   - StateExhausted: every row has been reviewed
package review
