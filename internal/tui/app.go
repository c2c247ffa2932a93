// internal/tui/app.go
//
// This is the main TUI for signoff. It uses bubbletea, which follows The Elm
// Architecture:
//
// 1. Model: the stepper controller plus the signature pad
// 2. Update: keys drive the stepper, mouse drags draw on the pad
// 3. View: the step board, or the signature modal while it is open
//
// All controller and pad mutations happen inside Update, so neither needs
// locking.

package tui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/signoff/internal/logbook"
	"github.com/kingrea/signoff/internal/logging"
	"github.com/kingrea/signoff/internal/signature"
	"github.com/kingrea/signoff/internal/stepper"
)

const (
	// WarningMessage is shown when manager verification is attempted first.
	WarningMessage = "Assignee must confirm completion before manager verification"
	// GuidanceMessage is shown while the current step still needs a sign-off.
	GuidanceMessage = "Both assignee confirmation and manager verification are required to proceed"

	logPanelLines = 6
	previewCols   = 25
	previewRows   = 4
)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithLogbook shows the journey log in a panel under the board.
func WithLogbook(book *logbook.Logbook) AppOption {
	return func(a *App) {
		a.logbook = book
	}
}

// WithLogger routes TUI diagnostics to logger.
func WithLogger(logger *slog.Logger) AppOption {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// App is the main application model.
type App struct {
	ctrl    *stepper.Controller
	pad     *signature.Pad
	logbook *logbook.Logbook
	logger  *slog.Logger

	keys    stepperKeys
	padKeys padKeys
	help    help.Model

	// cursor is the step the expand toggle applies to. It follows the
	// current step on navigation.
	cursor    int
	preview   [][]signature.Cell
	statusMsg string

	width  int
	height int
}

// NewApp builds the model around an existing controller.
func NewApp(ctrl *stepper.Controller, opts ...AppOption) *App {
	a := &App{
		ctrl:    ctrl,
		logger:  logging.Discard(),
		keys:    newStepperKeys(),
		padKeys: newPadKeys(),
		help:    help.New(),
		cursor:  ctrl.Current(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	a.pad = signature.NewPad(
		signature.WithBounds(canvasBounds()),
		signature.WithSubmit(a.captureSignature),
		signature.WithClose(ctrl.CloseSignature),
	)
	if art, ok := ctrl.Signature(); ok {
		a.refreshPreview(art)
	}
	return a
}

// Pad exposes the signature pad.
func (a *App) Pad() *signature.Pad { return a.pad }

func (a *App) captureSignature(art signature.Artifact) {
	a.ctrl.CaptureSignature(art)
	a.refreshPreview(art)
	a.statusMsg = "E-signature captured successfully"
}

func (a *App) refreshPreview(art signature.Artifact) {
	surface, err := signature.Decode(art.PNG)
	if err != nil {
		a.preview = nil
		a.logger.Error("signature preview failed", "error", err)
		return
	}
	a.preview = surface.Thumbnail(previewCols, previewRows)
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case tea.KeyMsg:
		if a.pad.IsOpen() {
			return a.updatePad(msg)
		}
		return a.updateStepper(msg)

	case tea.MouseMsg:
		if a.pad.IsOpen() {
			a.handleMouse(msg)
		}
		return a, nil
	}
	return a, nil
}

func (a *App) updateStepper(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	current := a.ctrl.Current()
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Next):
		if a.ctrl.NextDisabled() {
			return a, nil
		}
		a.ctrl.Advance()
		a.cursor = a.ctrl.Current()
		a.statusMsg = ""
	case key.Matches(msg, a.keys.Back):
		if a.ctrl.BackDisabled() {
			return a, nil
		}
		a.ctrl.Retreat()
		a.cursor = a.ctrl.Current()
		a.statusMsg = ""
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 1 {
			a.cursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.cursor < a.ctrl.Catalog().Len() {
			a.cursor++
		}
	case key.Matches(msg, a.keys.Expand):
		a.ctrl.ToggleExpand(a.cursor)
	case key.Matches(msg, a.keys.Assignee):
		a.ctrl.ConfirmAssignee(current)
		a.logger.Debug("assignee toggled", "step", current, "confirmed", a.ctrl.AssigneeConfirmed(current))
	case key.Matches(msg, a.keys.Manager):
		a.ctrl.VerifyManager(current)
		if a.ctrl.Warning() {
			a.logger.Debug("manager verification rejected", "step", current)
		}
	case key.Matches(msg, a.keys.Signature):
		a.openSignature()
	case key.Matches(msg, a.keys.Download):
		a.requestDownload()
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}
	return a, nil
}

func (a *App) openSignature() {
	switch {
	case !a.ctrl.OnFinalStep():
		a.statusMsg = "E-signature is captured on the final step"
		return
	case a.ctrl.State().HasSignature():
		a.statusMsg = "E-signature already captured"
		return
	}
	a.ctrl.OpenSignature()
	a.pad.Open()
	a.statusMsg = ""
}

func (a *App) requestDownload() {
	step := a.ctrl.CurrentStep()
	url := strings.TrimSpace(step.DownloadURL)
	if url == "" {
		a.statusMsg = "No resources attached to this step"
		return
	}
	a.statusMsg = fmt.Sprintf("Download Resources · %s (delivery is handled outside signoff)", url)
	a.logInfo("Resources requested for step %d: %s", step.Number, url)
}

func (a *App) updatePad(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.padKeys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.padKeys.Cancel):
		a.pad.Cancel()
	case key.Matches(msg, a.padKeys.Clear):
		a.pad.Clear()
	case key.Matches(msg, a.padKeys.Submit):
		if _, err := a.pad.Submit(); err != nil {
			a.logger.Debug("signature submit rejected", "error", err)
		}
	}
	return a, nil
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

// View renders the current state to a string.
func (a *App) View() string {
	if a.pad.IsOpen() {
		return a.renderSignatureModal()
	}
	width := a.width
	if width <= 0 {
		width = 100
	}
	listWidth := max(28, width/3)
	detailWidth := max(40, width-listWidth-6)

	header := headerStyle.Render("✍ SIGNOFF") + "  " +
		mutedStyle.Render(fmt.Sprintf("Step %d of %d", a.ctrl.Current(), a.ctrl.Catalog().Len()))
	list := panelStyle.Width(listWidth).Render(a.renderStepList())
	detail := panelStyle.Width(detailWidth).Render(a.renderDetail(detailWidth - 4))
	sections := []string{header, lipgloss.JoinHorizontal(lipgloss.Top, list, detail)}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	if a.statusMsg != "" {
		sections = append(sections, subtleStyle.Render(a.statusMsg))
	}
	sections = append(sections, a.help.View(a.keys))
	return strings.Join(sections, "\n")
}

func (a *App) renderStepList() string {
	var rows []string
	for _, step := range a.ctrl.Catalog().Steps() {
		pointer := "  "
		if step.Number == a.cursor {
			pointer = "› "
		}
		chevron := "▸"
		if a.ctrl.Expanded(step.Number) {
			chevron = "▾"
		}
		title := fmt.Sprintf("%d. %s", step.Number, step.Title)
		if step.Number == a.ctrl.Current() {
			title = selectedStyle.Render(title)
		}
		rows = append(rows, fmt.Sprintf("%s%s %s %s", pointer, markerSymbol(a.ctrl.Marker(step.Number)), title, mutedStyle.Render(chevron)))
		if a.ctrl.Expanded(step.Number) {
			rows = append(rows, mutedStyle.Render("     Role: "+step.RequiredRole))
			if step.Subtitle != "" {
				rows = append(rows, subtleStyle.Render("     "+step.Subtitle))
			}
		}
	}
	return strings.Join(rows, "\n")
}

func markerSymbol(m stepper.Marker) string {
	switch m {
	case stepper.MarkerCompleted:
		return successStyle.Render("✓")
	case stepper.MarkerActive:
		return titleStyle.Render("●")
	default:
		return mutedStyle.Render("○")
	}
}

func (a *App) renderDetail(width int) string {
	step := a.ctrl.CurrentStep()
	lines := []string{
		titleStyle.Render(step.Title),
		lipgloss.NewStyle().Width(max(20, width)).Render(step.Description),
	}
	if a.ctrl.Warning() {
		lines = append(lines, "", warnStyle.Render("⚠ "+WarningMessage))
	}
	if a.ctrl.ShowGuidance() {
		lines = append(lines, "", subtleStyle.Render("ⓘ "+GuidanceMessage))
	}
	lines = append(lines, "", buttonStyle.Render("[d] Download Resources"))
	if a.ctrl.OnFinalStep() {
		lines = append(lines, "", a.renderFinalApproval())
	}
	lines = append(lines, "", a.renderVerification(), "", a.renderNavigation())
	return strings.Join(lines, "\n")
}

func (a *App) renderFinalApproval() string {
	head := selectedStyle.Render("Final Approval")
	art, ok := a.ctrl.Signature()
	if !ok {
		return head + "\n" + buttonStyle.Render("[s] Capture E-Signature")
	}
	lines := []string{head, successStyle.Render("E-signature captured successfully")}
	if a.preview != nil {
		lines = append(lines, renderCells(a.preview))
	}
	lines = append(lines, mutedStyle.Render(fmt.Sprintf("%d×%d %s · %s",
		art.Width, art.Height, signature.MediaType, art.CapturedAt.Format(time.Kitchen))))
	return strings.Join(lines, "\n")
}

func (a *App) renderVerification() string {
	n := a.ctrl.Current()
	return strings.Join([]string{
		selectedStyle.Render("Step Verification"),
		checkbox(a.ctrl.AssigneeConfirmed(n)) + " Assignee Confirmation " + mutedStyle.Render("[a]"),
		checkbox(a.ctrl.ManagerVerified(n)) + " Manager Verification " + mutedStyle.Render("[m]"),
	}, "\n")
}

func checkbox(checked bool) string {
	if checked {
		return successStyle.Render("[x]")
	}
	return "[ ]"
}

func (a *App) renderNavigation() string {
	back := buttonStyle.Render("‹ Back")
	if a.ctrl.BackDisabled() {
		back = disabledStyle.Render("‹ Back")
	}
	next := buttonStyle.Render("Next ›")
	if a.ctrl.NextDisabled() {
		next = disabledStyle.Render("Next ›")
	}
	return back + "    " + next
}

func (a *App) renderLogPanel() string {
	entries, total := a.logbook.Entries(logPanelLines)
	if len(entries) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	rows := make([]string, len(entries))
	for i, entry := range entries {
		stamp := ""
		if !entry.Time.IsZero() {
			stamp = entry.Time.Local().Format(time.TimeOnly) + " "
		}
		rows[i] = mutedStyle.Render(stamp) + levelStyle(entry.Level).Render(entry.Message)
	}
	head := titleStyle.Render(fmt.Sprintf("LOG · %s (%d)", fileName, total))
	return panelStyle.Render(head + "\n" + strings.Join(rows, "\n"))
}

func levelStyle(level logbook.Level) lipgloss.Style {
	switch level {
	case logbook.LevelWarn:
		return warnStyle
	case logbook.LevelError:
		return errorStyle
	default:
		return subtleStyle
	}
}
