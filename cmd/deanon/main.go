// Command deanon walks through survey answers row by row and replaces each
// anonymization marker with an entity label.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/handiism/deanon/internal/config"
	ioutils "github.com/handiism/deanon/internal/io"
	"github.com/handiism/deanon/internal/logging"
	"github.com/handiism/deanon/internal/review"
	"github.com/handiism/deanon/internal/scan"
	"github.com/handiism/deanon/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds the state shared by all commands of one invocation.
type app struct {
	configPath string
	verbose    bool

	// Overrides for settings, applied only when the flag was set
	input          string
	column         string
	stateFile      string
	exportDir      string
	logFile        string
	advanceOnApply bool
	concurrency    int
	strict         bool

	settings *config.Settings
	logger   *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "deanon [input.csv]",
		Short: "Label anonymization markers in survey CSV files",
		Long: `deanon opens a CSV export of survey answers and shows every answer that
still contains an anonymization marker (XXX by default). Each marker is
replaced by a label (PERSON, DATE, ORGANISATION, LOCATION, a custom value or
nothing at all) until no marker is left.

Progress is kept in a state file so a review can be resumed, and the edited
data is exported to a new timestamped CSV on request.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.runReview,
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log at debug level")
	rootCmd.PersistentFlags().StringVar(&a.column, "column", "", "Text column name, or #N for the N-th column")
	rootCmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Log file (- for stderr)")

	rootCmd.Flags().StringVarP(&a.input, "input", "i", "", "Input CSV file")
	rootCmd.Flags().StringVar(&a.stateFile, "state-file", "", "File that keeps the review position")
	rootCmd.Flags().StringVar(&a.exportDir, "export-dir", "", "Directory for exported CSV files")
	rootCmd.Flags().BoolVar(&a.advanceOnApply, "advance-on-apply", false, "Move to the next row as soon as its last marker is labelled")

	rootCmd.AddCommand(newScanCmd(a), newConfigCmd(a))
	return rootCmd
}

// setup resolves settings from file, environment and flags, then builds the
// logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := settings.ApplyEnv(); err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		settings.InputPath = a.input
	}
	if flags.Changed("column") {
		settings.TextColumn = a.column
	}
	if flags.Changed("state-file") {
		settings.StateFile = a.stateFile
	}
	if flags.Changed("export-dir") {
		settings.ExportDir = a.exportDir
	}
	if flags.Changed("log-file") {
		settings.LogFile = a.logFile
	}
	if flags.Changed("advance-on-apply") {
		settings.AdvanceOnApply = a.advanceOnApply
	}
	if flags.Changed("concurrency") {
		settings.MaxConcurrentScans = a.concurrency
	}

	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	logger, err := logging.New(logging.Options{
		File:    settings.LogFile,
		Level:   settings.LogLevel,
		Verbose: a.verbose,
	})
	if err != nil {
		return err
	}

	a.settings = settings
	a.logger = logger
	return nil
}

func (a *app) runReview(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		a.settings.InputPath = args[0]
	}

	ds, err := ioutils.LoadDataset(a.settings.InputPath, a.settings.TextColumn)
	if err != nil {
		a.logger.Error("loading input failed", zap.String("path", a.settings.InputPath), zap.Error(err))
		return fmt.Errorf("load input: %w", err)
	}

	session, err := review.NewSession(ds, a.settings.ToParser(), review.NewCursorFile(a.settings.StateFile), a.logger, review.Options{
		AdvanceOnApply: a.settings.AdvanceOnApply,
		ExportDir:      a.settings.ExportDir,
	})
	if err != nil {
		return err
	}

	return tui.Run(session, a.settings, a.logger)
}

func newScanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan FILE...",
		Short: "Report unresolved markers in CSV files",
		Long: `Counts the markers left in the text column of each file, without opening
the review UI. Files are read in parallel.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runScan,
	}
	cmd.Flags().IntVar(&a.concurrency, "concurrency", 0, "Files scanned in parallel")
	cmd.Flags().BoolVar(&a.strict, "strict", false, "Exit non-zero when any marker is left")
	return cmd
}

func (a *app) runScan(cmd *cobra.Command, args []string) error {
	// Handle interrupts
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	stderr := cmd.ErrOrStderr()
	manager := scan.NewManager(a.settings, func(event scan.ProgressEvent) {
		a.logger.Debug(event.Message, zap.Stringer("level", event.Level))
		if event.Level == scan.LevelVerbose && !a.verbose {
			return
		}
		if event.Level == scan.LevelError {
			fmt.Fprintln(stderr, "error: "+event.Message)
		}
	})

	reports, err := manager.Scan(ctx, args)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderReports(reports))

	var failed, unresolved int
	for _, r := range reports {
		switch {
		case r.Err != nil:
			failed++
		case !r.Resolved():
			unresolved++
		}
	}
	a.logger.Info("scan finished",
		zap.Int("files", len(reports)),
		zap.Int("failed", failed),
		zap.Int("unresolved", unresolved))

	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be scanned", failed, len(reports))
	}
	if a.strict && unresolved > 0 {
		return fmt.Errorf("%d of %d files still contain markers", unresolved, len(reports))
	}
	return nil
}

func renderReports(reports []scan.Report) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("FILE", "ROWS", "WITH MARKERS", "MARKERS", "FIRST UNRESOLVED")

	for _, r := range reports {
		if r.Err != nil {
			t.Row(r.Path, "-", "-", "-", "error")
			continue
		}
		first := "-"
		if r.FirstUnresolved >= 0 {
			// Rows are shown 1-based, like the review screen
			first = strconv.Itoa(r.FirstUnresolved + 1)
		}
		t.Row(r.Path,
			strconv.Itoa(r.Rows),
			strconv.Itoa(r.RowsWithMarkers),
			strconv.Itoa(r.Markers),
			first)
	}
	return t.Render()
}

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		// Config commands must work even when the current config is broken
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			} else if !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := config.DefaultSettings().Save(path); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	configCmd.AddCommand(initCmd)
	return configCmd
}
