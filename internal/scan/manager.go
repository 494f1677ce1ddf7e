package scan

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/handiism/deanon/internal/annotation"
	"github.com/handiism/deanon/internal/config"
	ioutils "github.com/handiism/deanon/internal/io"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// String returns the level name used in console output.
func (l ProgressLevel) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// ProgressEvent represents a scan progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Report summarizes the markers found in one CSV file.
type Report struct {
	Path string

	// Rows is the number of data rows, header excluded.
	Rows int

	// RowsWithMarkers counts rows whose text column holds at least one marker.
	RowsWithMarkers int

	// Markers is the total number of markers in the text column.
	Markers int

	// FirstUnresolved is the index of the first row with a marker, or -1.
	FirstUnresolved int

	// Err is set when the file could not be scanned; the counts are then zero.
	Err error
}

// Resolved reports whether the file has no markers left.
func (r Report) Resolved() bool {
	return r.Err == nil && r.Markers == 0
}

// Manager scans CSV files for unresolved markers.
type Manager struct {
	settings *config.Settings
	parser   *annotation.Parser

	totalFiles   int32
	scannedFiles int32

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// NewManager creates a new scan Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:   settings,
		parser:     settings.ToParser(),
		onProgress: onProgress,
	}
}

// Scan reads every file concurrently and returns one Report per path, in
// input order. A file that fails to load yields a Report with Err set; Scan
// itself only fails when ctx is cancelled.
func (m *Manager) Scan(ctx context.Context, paths []string) ([]Report, error) {
	reports := make([]Report, len(paths))
	atomic.StoreInt32(&m.totalFiles, int32(len(paths)))
	atomic.StoreInt32(&m.scannedFiles, 0)

	limit := m.settings.MaxConcurrentScans
	if limit < 1 {
		limit = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = m.scanFile(path)
			atomic.AddInt32(&m.scannedFiles, 1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return reports, err
	}
	return reports, nil
}

// GetProgress returns how many files have been scanned so far.
func (m *Manager) GetProgress() (scanned, total int32) {
	return atomic.LoadInt32(&m.scannedFiles), atomic.LoadInt32(&m.totalFiles)
}

func (m *Manager) scanFile(path string) Report {
	report := Report{Path: path, FirstUnresolved: -1}
	name := filepath.Base(path)

	m.progress(ProgressEvent{Message: fmt.Sprintf("Scanning %s", name), Level: LevelVerbose})

	ds, err := ioutils.LoadDataset(path, m.settings.TextColumn)
	if err != nil {
		report.Err = err
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error scanning %s: %v", name, err), Level: LevelError})
		return report
	}

	report.Rows = ds.Len()
	for i := 0; i < ds.Len(); i++ {
		text, _ := ds.Text(i)
		n := m.parser.Count(text)
		if n == 0 {
			continue
		}
		if report.FirstUnresolved < 0 {
			report.FirstUnresolved = i
		}
		report.RowsWithMarkers++
		report.Markers += n
	}

	if report.Resolved() {
		m.progress(ProgressEvent{Message: fmt.Sprintf("%s: all %d rows resolved", name, report.Rows), Level: LevelSuccess})
	} else {
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("%s: %d markers in %d of %d rows", name, report.Markers, report.RowsWithMarkers, report.Rows),
			Level:   LevelInfo,
		})
	}
	return report
}

// progress serializes callbacks so handlers need no locking of their own.
func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onProgress(event)
}
