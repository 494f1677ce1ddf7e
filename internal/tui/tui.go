// Package tui provides a Bubble Tea terminal user interface for reviewing
// anonymization markers row by row.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/deanon/internal/annotation"
	"github.com/handiism/deanon/internal/config"
	"github.com/handiism/deanon/internal/model"
	"github.com/handiism/deanon/internal/review"
	"go.uber.org/zap"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	textBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#6C757D")).
			Padding(0, 1)
)

// Mode is the input mode of the review screen.
type Mode int

const (
	// ModeReview accepts label and command keys.
	ModeReview Mode = iota

	// ModeCustom routes key presses to the custom label input.
	ModeCustom
)

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusSuccess
	statusWarning
	statusError
)

// Model is the Bubble Tea model for the review screen.
type Model struct {
	session  *review.Session
	settings *config.Settings
	logger   *zap.Logger

	keys      KeyMap
	help      help.Model
	textInput textinput.Model
	progress  progress.Model

	mode     Mode
	segments []annotation.Segment
	text     string

	status      string
	statusLevel statusLevel

	width  int
	height int
}

// NewModel creates a review model for session and moves it to the first row
// that still needs a label.
func NewModel(session *review.Session, settings *config.Settings, logger *zap.Logger) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = "custom label"
	ti.CharLimit = 200
	ti.Width = 40

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	m := Model{
		session:   session,
		settings:  settings,
		logger:    logger,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		textInput: ti,
		progress:  prog,
		mode:      ModeReview,
	}
	m.settle()
	m.refresh()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Mode returns the current input mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Status returns the status line message.
func (m Model) Status() string {
	return m.status
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode == ModeCustom {
			return m.updateCustom(msg)
		}
		return m.updateReview(msg)
	}

	if m.mode == ModeCustom {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Export):
		m.export()
		return m, nil

	case key.Matches(msg, m.keys.Custom):
		if m.session.State() != review.StateAwaitingInput {
			m.setStatus(statusWarning, "No marker to label")
			return m, nil
		}
		m.mode = ModeCustom
		m.textInput.SetValue("")
		return m, m.textInput.Focus()
	}

	for _, lb := range m.keys.labelBindings() {
		if key.Matches(msg, lb.Binding) {
			m.apply(lb.Label, "")
			return m, nil
		}
	}
	return m, nil
}

func (m Model) updateCustom(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.leaveCustom()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		value := m.textInput.Value()
		m.leaveCustom()
		m.apply(model.LabelCustom, value)
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *Model) leaveCustom() {
	m.mode = ModeReview
	m.textInput.Blur()
	m.textInput.SetValue("")
}

// apply labels the first marker of the current row and settles the session.
func (m *Model) apply(label model.Label, custom string) {
	res, err := m.session.ApplyLabel(label, custom)
	switch {
	case errors.Is(err, review.ErrExhausted):
		m.setStatus(statusWarning, "All rows reviewed, press e to export")
		return
	case errors.Is(err, review.ErrNoMarker):
		m.setStatus(statusWarning, "No marker to label")
		return
	case err != nil:
		m.setStatus(statusError, fmt.Sprintf("Could not save progress: %v", err))
	default:
		m.setStatus(statusInfo, fmt.Sprintf("Applied %s", label))
	}

	if res.Rerender {
		m.settle()
		m.refresh()
	}
}

// settle skips rows that have nothing left to label.
func (m *Model) settle() {
	if _, err := m.session.Settle(); err != nil {
		m.setStatus(statusError, fmt.Sprintf("Could not save progress: %v", err))
	}
}

// refresh re-parses the current row for display.
func (m *Model) refresh() {
	idx, text := m.session.CurrentRow()
	segments, err := m.session.Parser().Parse(text)
	if err != nil {
		m.logger.Warn("rendering partial row",
			zap.String("session_id", m.session.ID()),
			zap.Int("row", idx),
			zap.Error(err))
		m.setStatus(statusWarning, "Row could not be fully annotated")
	}
	m.text = text
	m.segments = segments
}

func (m *Model) export() {
	path, err := m.session.Export()
	if err != nil {
		m.setStatus(statusError, fmt.Sprintf("Export failed: %v", err))
		return
	}
	m.setStatus(statusSuccess, fmt.Sprintf("Exported to %s", path))
}

func (m *Model) setStatus(level statusLevel, msg string) {
	m.status = msg
	m.statusLevel = level
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("deanon"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Label anonymized passages in survey answers"))
	b.WriteString("\n\n")

	b.WriteString(m.viewProgress())
	b.WriteString("\n\n")

	if m.session.State() == review.StateExhausted {
		b.WriteString(m.viewExhausted())
	} else {
		b.WriteString(m.viewRow())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.renderStatus())
		b.WriteString("\n")
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(m.getHelpText())

	return b.String()
}

func (m Model) viewProgress() string {
	done, total, fraction := m.session.Progress()
	return m.progress.ViewAs(fraction) + " " + infoStyle.Render(fmt.Sprintf("%d/%d", done, total))
}

func (m Model) viewRow() string {
	var b strings.Builder

	idx, _ := m.session.CurrentRow()
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Row %d", idx+1)))
	b.WriteString("\n\n")
	b.WriteString(m.renderSegments())
	b.WriteString("\n\n")

	b.WriteString(dimStyle.Render("Current text:"))
	b.WriteString("\n")
	b.WriteString(textBoxStyle.Render(m.text))
	b.WriteString("\n")

	if m.mode == ModeCustom {
		b.WriteString("\n")
		b.WriteString(subtitleStyle.Render("Custom label:"))
		b.WriteString("\n")
		b.WriteString(m.textInput.View())
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewExhausted() string {
	_, total, _ := m.session.Progress()
	return boxStyle.Render(fmt.Sprintf(
		"All rows reviewed\n\n"+
			"Rows: %d\n"+
			"Press e to export the edited file.",
		total,
	))
}

// renderSegments draws plain text as-is and entities as colored chips with
// a dimmed upper-case label.
func (m Model) renderSegments() string {
	var b strings.Builder
	for _, seg := range m.segments {
		if !seg.IsEntity() {
			b.WriteString(seg.Text)
			continue
		}
		chip := lipgloss.NewStyle().
			Background(lipgloss.Color(seg.Background)).
			Foreground(lipgloss.Color(m.settings.LabelForeground))
		b.WriteString(chip.PaddingLeft(1).Render(seg.Text + " "))
		b.WriteString(chip.Faint(true).Bold(true).PaddingRight(1).Render(strings.ToUpper(seg.Label)))
	}

	out := b.String()
	if m.width > 4 {
		out = lipgloss.NewStyle().Width(m.width - 4).Render(out)
	}
	return out
}

func (m Model) renderStatus() string {
	var style lipgloss.Style
	prefix := "›"
	switch m.statusLevel {
	case statusError:
		style = errorStyle
		prefix = "✗"
	case statusWarning:
		style = warningStyle
		prefix = "!"
	case statusSuccess:
		style = successStyle
		prefix = "✓"
	default:
		style = infoStyle
	}
	return style.Render(prefix + " " + m.status)
}

func (m Model) getHelpText() string {
	switch {
	case m.mode == ModeCustom:
		return m.help.ShortHelpView(m.keys.customHelp())
	case m.session.State() == review.StateExhausted:
		return m.help.ShortHelpView(m.keys.exhaustedHelp())
	default:
		return m.help.ShortHelpView(m.keys.reviewHelp())
	}
}

// Run starts the TUI application.
func Run(session *review.Session, settings *config.Settings, logger *zap.Logger) error {
	p := tea.NewProgram(NewModel(session, settings, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
