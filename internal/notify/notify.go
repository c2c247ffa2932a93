// Package notify holds the host-side sinks for stepper notifications. The
// controller treats every sink as fire-and-forget, so failures here are only
// logged.
package notify

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/kingrea/signoff/internal/logbook"
	"github.com/kingrea/signoff/internal/stepper"
)

// Journal mirrors notifications into the logbook shown in the TUI.
type Journal struct {
	book *logbook.Logbook
}

// NewJournal wraps a logbook. A nil logbook produces a silent journal.
func NewJournal(book *logbook.Logbook) *Journal {
	return &Journal{book: book}
}

// StepCompleted logs a completion flip, revokes at WARN.
func (j *Journal) StepCompleted(e stepper.StepCompletion) {
	if e.Completed {
		j.book.Info("Step %d completed", e.Step)
		return
	}
	j.book.Warn("Step %d uncompleted", e.Step)
}

// StepChanged logs the step being moved to.
func (j *Journal) StepChanged(e stepper.StepChange) {
	j.book.Info("Moving to step %d", e.Step)
}

// SignatureCaptured logs the capture and the artifact size.
func (j *Journal) SignatureCaptured(e stepper.SignatureEvent) {
	j.book.Info("E-signature captured for step %d (%d bytes)", e.Step, len(e.Artifact.PNG))
}

// Slog records notifications as structured log entries.
type Slog struct {
	logger *slog.Logger
}

// NewSlog wraps logger.
func NewSlog(logger *slog.Logger) *Slog {
	return &Slog{logger: logger.With("system", "stepper")}
}

// StepCompleted logs the flip with its timing. Start time and elapsed are
// omitted for a step that was never current.
func (s *Slog) StepCompleted(e stepper.StepCompletion) {
	attrs := []any{
		"session", e.SessionID,
		"step", e.Step,
		"completed", e.Completed,
	}
	if e.Timing.Entered() {
		attrs = append(attrs, "start_time", e.Timing.StartTime.Format(time.RFC3339))
	}
	if finish := e.Timing.FinishTime; finish != nil {
		attrs = append(attrs, "finish_time", finish.Format(time.RFC3339))
		if e.Timing.Entered() {
			attrs = append(attrs, "elapsed", finish.Sub(e.Timing.StartTime).String())
		}
	}
	s.logger.Info("step completion changed", attrs...)
}

// StepChanged logs the move.
func (s *Slog) StepChanged(e stepper.StepChange) {
	s.logger.Info("step changed", "session", e.SessionID, "step", e.Step, "previous", e.Previous)
}

// SignatureCaptured logs the artifact size and capture time.
func (s *Slog) SignatureCaptured(e stepper.SignatureEvent) {
	s.logger.Info("signature captured",
		"session", e.SessionID,
		"step", e.Step,
		"bytes", len(e.Artifact.PNG),
		"captured_at", e.Artifact.CapturedAt.Format(time.RFC3339),
	)
}

// SignatureExporter writes captured signatures to disk as PNG files.
type SignatureExporter struct {
	dir    string
	file   string
	logger *slog.Logger
	book   *logbook.Logbook

	// LastPath is the most recently written file.
	LastPath string
}

// NewSignatureExporter writes into dir. book may be nil.
func NewSignatureExporter(dir string, logger *slog.Logger, book *logbook.Logbook) *SignatureExporter {
	return &SignatureExporter{dir: dir, logger: logger, book: book}
}

// NewSignatureFileExporter always writes to the same file, overwriting any
// earlier capture.
func NewSignatureFileExporter(path string, logger *slog.Logger, book *logbook.Logbook) *SignatureExporter {
	return &SignatureExporter{dir: filepath.Dir(path), file: path, logger: logger, book: book}
}

// StepCompleted is a no-op.
func (x *SignatureExporter) StepCompleted(stepper.StepCompletion) {}

// StepChanged is a no-op.
func (x *SignatureExporter) StepChanged(stepper.StepChange) {}

// SignatureCaptured writes the PNG. Failures are logged and dropped.
func (x *SignatureExporter) SignatureCaptured(e stepper.SignatureEvent) {
	path, err := x.write(e)
	if err != nil {
		x.logger.Error("signature export failed", "error", err)
		x.book.Error("Signature export failed: %v", err)
		return
	}
	x.LastPath = path
	x.logger.Info("signature exported", "path", path)
	x.book.Info("Signature saved to %s", path)
}

func (x *SignatureExporter) write(e stepper.SignatureEvent) (string, error) {
	if e.Artifact.IsZero() {
		return "", fmt.Errorf("notify: empty signature artifact")
	}
	if err := os.MkdirAll(x.dir, 0o755); err != nil {
		return "", fmt.Errorf("notify: ensure export dir: %w", err)
	}
	path := x.file
	if path == "" {
		path = filepath.Join(x.dir, fmt.Sprintf("%s-step%d.png", e.SessionID, e.Step))
	}
	if err := os.WriteFile(path, e.Artifact.PNG, 0o644); err != nil {
		return "", fmt.Errorf("notify: write %s: %w", path, err)
	}
	return path, nil
}
