package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/handiism/deanon/internal/annotation"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when no path is given.
const DefaultPath = "deanon.yaml"

// Settings holds all configuration options.
type Settings struct {
	// Input settings
	InputPath  string `yaml:"input_path"`
	TextColumn string `yaml:"text_column"`

	// Progress and export
	StateFile string `yaml:"state_file"`
	ExportDir string `yaml:"export_dir"`

	// Marker rendering
	Marker          string `yaml:"marker"`
	UnknownLabel    string `yaml:"unknown_label"`
	HighlightColor  string `yaml:"highlight_color"`
	LabelForeground string `yaml:"label_foreground"`

	// Review behaviour
	AdvanceOnApply bool `yaml:"advance_on_apply"`

	// Logging
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Scan settings
	MaxConcurrentScans int `yaml:"max_concurrent_scans"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		InputPath:  filepath.Join("data", "anonymized_only.csv"),
		TextColumn: "open_nps_reason",

		StateFile: "state_file.txt",
		ExportDir: "data",

		Marker:          annotation.DefaultMarker,
		UnknownLabel:    annotation.DefaultLabel,
		HighlightColor:  annotation.DefaultColor,
		LabelForeground: "#333",

		AdvanceOnApply: false,

		LogFile:  "deanon.log",
		LogLevel: "info",

		MaxConcurrentScans: 4,
	}
}

// Load reads settings from a YAML file.
//
// A missing file yields the defaults. Fields absent from the file keep their
// default values.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a YAML file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv loads a .env file from the working directory (if present) and
// applies DEANON_* environment variables on top of the current values.
func (s *Settings) ApplyEnv() error {
	// Best-effort: a missing .env is not an error
	_ = godotenv.Load()

	if v := strings.TrimSpace(os.Getenv("DEANON_INPUT")); v != "" {
		s.InputPath = v
	}
	if v := strings.TrimSpace(os.Getenv("DEANON_TEXT_COLUMN")); v != "" {
		s.TextColumn = v
	}
	if v := strings.TrimSpace(os.Getenv("DEANON_STATE_FILE")); v != "" {
		s.StateFile = v
	}
	if v := strings.TrimSpace(os.Getenv("DEANON_EXPORT_DIR")); v != "" {
		s.ExportDir = v
	}
	if v := strings.TrimSpace(os.Getenv("DEANON_LOG_FILE")); v != "" {
		s.LogFile = v
	}
	if v := strings.TrimSpace(os.Getenv("DEANON_LOG_LEVEL")); v != "" {
		s.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("DEANON_ADVANCE_ON_APPLY")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DEANON_ADVANCE_ON_APPLY: %w", err)
		}
		s.AdvanceOnApply = b
	}
	return nil
}

// Validate reports settings that would make a review impossible.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.TextColumn) == "" {
		return errors.New("text_column must not be empty")
	}
	if s.Marker == "" {
		return errors.New("marker must not be empty")
	}
	if s.StateFile == "" {
		return errors.New("state_file must not be empty")
	}
	if s.MaxConcurrentScans < 1 {
		return fmt.Errorf("max_concurrent_scans must be at least 1, got %d", s.MaxConcurrentScans)
	}
	return nil
}

// ToParser converts settings to an annotation Parser.
func (s *Settings) ToParser() *annotation.Parser {
	return &annotation.Parser{
		Marker: s.Marker,
		Label:  s.UnknownLabel,
		Color:  s.HighlightColor,
	}
}
