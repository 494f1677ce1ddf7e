package review

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/handiism/deanon/internal/annotation"
	ioutils "github.com/handiism/deanon/internal/io"
	"github.com/handiism/deanon/internal/model"
	"go.uber.org/zap"
)

// SkipText is shown in place of row text once every row has been reviewed.
const SkipText = "SKIP"

var (
	// ErrExhausted is returned when an operation needs an active row but the
	// cursor is past the last row.
	ErrExhausted = errors.New("no rows left to review")

	// ErrNoMarker is returned by ApplyLabel when the active row has no marker.
	ErrNoMarker = errors.New("current row has no marker")
)

// State is the review state of the row under the cursor.
type State int

const (
	// StateAwaitingInput means the active row still contains a marker.
	StateAwaitingInput State = iota

	// StateResolved means the active row has no marker left and will be
	// skipped by the next SkipIfNoMarker or Settle call.
	StateResolved

	// StateExhausted means the cursor is past the last row.
	StateExhausted
)

// String returns a short lower-case name for logs.
func (s State) String() string {
	switch s {
	case StateAwaitingInput:
		return "awaiting_input"
	case StateResolved:
		return "resolved"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Result tells the host what an operation changed.
type Result struct {
	// Rerender is set when the host must redraw the current row.
	Rerender bool

	// Advanced is set when the cursor moved to the next row.
	Advanced bool
}

// Options configures a Session.
type Options struct {
	// AdvanceOnApply makes ApplyLabel skip to the next row as soon as the
	// last marker of the active row is resolved. Off by default: the cursor
	// is then only moved by SkipIfNoMarker/Settle.
	AdvanceOnApply bool

	// ExportDir is where Export writes files. Defaults to the current directory.
	ExportDir string

	// Now returns the export timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Session tracks which dataset row is under review and applies labels to it.
//
// A Session owns the Dataset for its lifetime. All methods are meant to be
// called from a single goroutine (the UI loop).
//
// Example:
//
//	s, err := review.NewSession(ds, annotation.NewParser(), review.NewCursorFile("state_file.txt"), logger, review.Options{})
//	s.Settle()                               // skip rows that need no review
//	_, text := s.CurrentRow()
//	res, err := s.ApplyLabel(model.LabelPerson, "")
//	if res.Rerender {
//	    s.Settle()
//	}
type Session struct {
	id      string
	dataset *model.Dataset
	parser  *annotation.Parser
	store   *CursorFile
	opts    Options
	logger  *zap.Logger
	cursor  int
}

// NewSession creates a Session and restores the persisted cursor.
//
// A cursor file that cannot be read is logged and treated as 0. A cursor
// greater than the number of rows is clamped to the number of rows.
func NewSession(ds *model.Dataset, parser *annotation.Parser, store *CursorFile, logger *zap.Logger, opts Options) (*Session, error) {
	if ds == nil {
		return nil, errors.New("review: nil dataset")
	}
	if parser == nil {
		parser = annotation.NewParser()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	id := uuid.NewString()
	s := &Session{
		id:      id,
		dataset: ds,
		parser:  parser,
		store:   store,
		opts:    opts,
		logger:  logger.With(zap.String("session_id", id)),
	}

	if store != nil {
		cursor, err := store.Load()
		if err != nil {
			s.logger.Warn("cursor file unreadable, starting from row 0",
				zap.String("path", store.Path()), zap.Error(err))
			cursor = 0
		}
		if cursor > ds.Len() {
			s.logger.Warn("cursor beyond dataset, clamping",
				zap.Int("cursor", cursor), zap.Int("rows", ds.Len()))
			cursor = ds.Len()
		}
		s.cursor = cursor
	}

	s.logger.Info("review session started",
		zap.Int("cursor", s.cursor),
		zap.Int("rows", ds.Len()),
		zap.String("text_column", ds.TextColumn()))

	return s, nil
}

// ID returns the session identifier used in log entries.
func (s *Session) ID() string {
	return s.id
}

// Dataset returns the dataset under review.
func (s *Session) Dataset() *model.Dataset {
	return s.dataset
}

// Parser returns the marker parser used by the session.
func (s *Session) Parser() *annotation.Parser {
	return s.parser
}

// Cursor returns the index of the next unresolved row.
func (s *Session) Cursor() int {
	return s.cursor
}

// Progress returns the reviewed row count, the total and their ratio.
func (s *Session) Progress() (done, total int, fraction float64) {
	total = s.dataset.Len()
	if total == 0 {
		return 0, 0, 1
	}
	return s.cursor, total, float64(s.cursor) / float64(total)
}

// State returns the state of the row under the cursor.
func (s *Session) State() State {
	if s.cursor >= s.dataset.Len() {
		return StateExhausted
	}
	_, text := s.CurrentRow()
	if s.parser.Contains(text) {
		return StateAwaitingInput
	}
	return StateResolved
}

// CurrentRow returns the cursor and the text of the row under it.
// Past the last row it returns SkipText instead of failing.
func (s *Session) CurrentRow() (int, string) {
	text, err := s.dataset.Text(s.cursor)
	if err != nil {
		s.logger.Debug("no current row", zap.Int("cursor", s.cursor), zap.Error(err))
		return s.cursor, SkipText
	}
	return s.cursor, text
}

// SkipIfNoMarker advances the cursor past the active row when that row has
// no marker left, and persists the new cursor.
//
// It does nothing when the active row still contains a marker or when the
// session is exhausted. If persisting fails the cursor is still advanced in
// memory and the error is returned.
func (s *Session) SkipIfNoMarker() (Result, error) {
	if s.cursor >= s.dataset.Len() {
		return Result{}, nil
	}
	_, text := s.CurrentRow()
	if s.parser.Contains(text) {
		return Result{}, nil
	}

	s.cursor++
	s.logger.Debug("row resolved, advancing", zap.Int("cursor", s.cursor))

	res := Result{Rerender: true, Advanced: true}
	if s.store != nil {
		if err := s.store.Save(s.cursor); err != nil {
			s.logger.Error("persisting cursor failed", zap.Int("cursor", s.cursor), zap.Error(err))
			return res, err
		}
	}
	return res, nil
}

// Settle calls SkipIfNoMarker until the cursor rests on a row with a marker
// or the session is exhausted. It returns the number of rows skipped and the
// last persistence error, if any.
func (s *Session) Settle() (int, error) {
	var (
		skipped int
		lastErr error
	)
	for {
		res, err := s.SkipIfNoMarker()
		if err != nil {
			lastErr = err
		}
		if !res.Advanced {
			break
		}
		skipped++
	}
	if skipped > 0 {
		s.logger.Info("skipped rows without markers", zap.Int("skipped", skipped), zap.Int("cursor", s.cursor))
	}
	return skipped, lastErr
}

// ApplyLabel replaces the first marker of the active row with the label's
// value. custom is only used for model.LabelCustom and is not validated.
//
// The cursor is not moved unless Options.AdvanceOnApply is set.
func (s *Session) ApplyLabel(label model.Label, custom string) (Result, error) {
	if s.cursor >= s.dataset.Len() {
		return Result{}, ErrExhausted
	}
	idx, text := s.CurrentRow()
	if !s.parser.Contains(text) {
		return Result{}, fmt.Errorf("%w (row %d)", ErrNoMarker, idx)
	}

	value := label.Value(custom)
	updated := strings.Replace(text, s.parser.Marker, value, 1)
	if err := s.dataset.SetText(idx, updated); err != nil {
		return Result{}, err
	}

	s.logger.Info("label applied",
		zap.Int("row", idx),
		zap.Stringer("label", label),
		zap.Int("markers_left", s.parser.Count(updated)))

	res := Result{Rerender: true}
	if s.opts.AdvanceOnApply {
		skip, err := s.SkipIfNoMarker()
		res.Advanced = skip.Advanced
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

// Export writes the whole dataset, edits included, to a new timestamped CSV
// in Options.ExportDir and returns its path. Existing files are never
// overwritten. The session itself is not modified.
func (s *Session) Export() (string, error) {
	dir := s.opts.ExportDir
	if dir == "" {
		dir = "."
	}
	if err := ioutils.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	path, err := ioutils.UniquePath(filepath.Join(dir, ioutils.ExportFileName(s.opts.Now())))
	if err != nil {
		return "", fmt.Errorf("choose export path: %w", err)
	}
	if err := ioutils.WriteDataset(path, s.dataset); err != nil {
		s.logger.Error("export failed", zap.String("path", path), zap.Error(err))
		return "", err
	}

	s.logger.Info("dataset exported", zap.String("path", path), zap.Int("rows", s.dataset.Len()))
	return path, nil
}
