package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kingrea/signoff/internal/config"
	"github.com/kingrea/signoff/internal/logbook"
	"github.com/kingrea/signoff/internal/logging"
	"github.com/kingrea/signoff/internal/notify"
	"github.com/kingrea/signoff/internal/stepper"
	"github.com/kingrea/signoff/internal/tui"
)

// session bundles everything one TUI run owns.
type session struct {
	logger   *logging.Logger
	book     *logbook.Logbook
	ctrl     *stepper.Controller
	exporter *notify.SignatureExporter
	app      *tui.App
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	sess, err := openSession(opts, cmd.Flags().Changed("initial-step"))
	if err != nil {
		return err
	}
	defer sess.logger.Close()

	p := tea.NewProgram(
		sess.app,
		tea.WithContext(cmd.Context()),
		tea.WithAltScreen(),      // Use alternate screen buffer (like vim does)
		tea.WithMouseAllMotion(), // Drag events reach the signature pad
	)
	if _, err := p.Run(); err != nil {
		sess.logger.Error("tui exited with error", "error", err)
		return fmt.Errorf("run tui: %w", err)
	}
	sess.close(cmd)
	return nil
}

func openSession(opts *rootOptions, initialSet bool) (*session, error) {
	if err := config.InitDir(opts.projectDir); err != nil {
		return nil, fmt.Errorf("initialize %s: %w", config.SignoffDir, err)
	}
	cfg, err := config.NewConfig(opts.projectDir)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel()
	if opts.debug {
		level = logging.LevelDebug
	}
	logger, err := logging.New(cfg.LogPath(), level)
	if err != nil {
		return nil, err
	}
	book, err := logbook.New(cfg.JourneyPath())
	if err != nil {
		logger.Close()
		return nil, err
	}

	catalog, err := loadCatalog(opts, cfg)
	if err != nil {
		logger.Close()
		return nil, err
	}
	initial := cfg.InitialStep()
	if initialSet {
		initial = opts.initialStep
	}

	observers := stepper.Observers{notify.NewJournal(book), notify.NewSlog(logger.Logger)}
	exporter := newExporter(opts, cfg, logger, book)
	if exporter != nil {
		observers = append(observers, exporter)
	}
	ctrl, err := stepper.New(catalog, stepper.WithInitialStep(initial), stepper.WithObserver(observers))
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("initial step %d of %d: %w", initial, catalog.Len(), err)
	}

	logger.Info("session started",
		"session", ctrl.SessionID(),
		"project", cfg.ProjectDir,
		"steps", catalog.Len(),
		"initial_step", initial,
	)
	book.Info("Session opened · step %d of %d", ctrl.Current(), catalog.Len())

	app := tui.NewApp(ctrl, tui.WithLogbook(book), tui.WithLogger(logger.Logger))
	return &session{logger: logger, book: book, ctrl: ctrl, exporter: exporter, app: app}, nil
}

func loadCatalog(opts *rootOptions, cfg *config.Config) (stepper.Catalog, error) {
	path := strings.TrimSpace(opts.catalogPath)
	if path == "" && cfg != nil {
		path = cfg.CatalogPath()
	}
	if path == "" {
		return stepper.DefaultCatalog(), nil
	}
	return stepper.LoadCatalogFile(path)
}

func newExporter(opts *rootOptions, cfg *config.Config, logger *logging.Logger, book *logbook.Logbook) *notify.SignatureExporter {
	if out := strings.TrimSpace(opts.signatureOut); out != "" {
		return notify.NewSignatureFileExporter(out, logger.Logger, book)
	}
	if dir := cfg.SignatureExportDir(); dir != "" {
		return notify.NewSignatureExporter(dir, logger.Logger, book)
	}
	return nil
}

// close records how far the session got and reports where the signature went.
func (s *session) close(cmd *cobra.Command) {
	state := s.ctrl.State()
	completed := state.Completed.Sorted()
	s.logger.Info("session closed",
		"session", s.ctrl.SessionID(),
		"current_step", state.Current,
		"completed", completed,
		"signed", state.HasSignature(),
	)
	s.book.Info("Session closed · %d of %d step(s) complete", len(completed), s.ctrl.Catalog().Len())
	if s.exporter != nil && s.exporter.LastPath != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Signature saved to %s\n", s.exporter.LastPath)
	}
}
