package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/signoff/internal/logbook"
	"github.com/kingrea/signoff/internal/notify"
	"github.com/kingrea/signoff/internal/signature"
	"github.com/kingrea/signoff/internal/stepper"
)

type events struct {
	changes     []stepper.StepChange
	completions []stepper.StepCompletion
	signatures  []stepper.SignatureEvent
}

func newTestApp(t *testing.T, opts ...stepper.Option) (*App, *events) {
	t.Helper()
	ev := &events{}
	observer := stepper.ObserverFuncs{
		OnStepChange:       func(e stepper.StepChange) { ev.changes = append(ev.changes, e) },
		OnStepComplete:     func(e stepper.StepCompletion) { ev.completions = append(ev.completions, e) },
		OnSignatureCapture: func(e stepper.SignatureEvent) { ev.signatures = append(ev.signatures, e) },
	}
	ctrl, err := stepper.New(stepper.DefaultCatalog(), append([]stepper.Option{stepper.WithObserver(observer)}, opts...)...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return sized(NewApp(ctrl)), ev
}

// sized gives the board enough room that banners render on one line.
func sized(app *App) *App {
	app.Update(tea.WindowSizeMsg{Width: 200, Height: 60})
	return app
}

func press(t *testing.T, app *App, keys ...string) *App {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		model, _ := app.Update(msg)
		var ok bool
		app, ok = model.(*App)
		if !ok {
			t.Fatalf("unexpected model type: %T", model)
		}
	}
	return app
}

func mouse(app *App, action tea.MouseAction, x, y int) {
	app.Update(tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft})
}

func drawStroke(app *App) {
	mouse(app, tea.MouseActionPress, 5, canvasTop+2)
	mouse(app, tea.MouseActionMotion, 15, canvasTop+3)
	mouse(app, tea.MouseActionMotion, 30, canvasTop+5)
	mouse(app, tea.MouseActionRelease, 30, canvasTop+5)
}

func TestKeysConfirmAndAdvance(t *testing.T) {
	app, ev := newTestApp(t)
	app = press(t, app, "n")
	if app.ctrl.Current() != 1 {
		t.Fatalf("next must be inert before sign-off")
	}
	if !strings.Contains(app.View(), GuidanceMessage) {
		t.Fatalf("expected guidance banner while step is unsigned")
	}
	app = press(t, app, "a", "m", "n")
	if app.ctrl.Current() != 2 {
		t.Fatalf("current = %d, want 2", app.ctrl.Current())
	}
	if len(ev.completions) != 1 || !ev.completions[0].Completed || len(ev.changes) != 1 || ev.changes[0].Step != 2 {
		t.Fatalf("unexpected notifications: %+v %+v", ev.completions, ev.changes)
	}
	if app.cursor != 2 {
		t.Fatalf("cursor should follow current step, got %d", app.cursor)
	}
	app = press(t, app, "b")
	if app.ctrl.Current() != 1 {
		t.Fatalf("back should return to step 1")
	}
}

func TestManagerBeforeAssigneeShowsWarning(t *testing.T) {
	app, ev := newTestApp(t)
	app = press(t, app, "m")
	if !strings.Contains(app.View(), WarningMessage) {
		t.Fatalf("expected warning banner")
	}
	if app.ctrl.ManagerVerified(1) || len(ev.completions) != 0 {
		t.Fatalf("manager verification must be rejected")
	}
	app = press(t, app, "a")
	if strings.Contains(app.View(), WarningMessage) {
		t.Fatalf("assignee confirmation should clear the warning")
	}
}

func TestExpandAppliesToCursorStep(t *testing.T) {
	app, _ := newTestApp(t)
	app = press(t, app, "j", "space")
	if !app.ctrl.Expanded(2) || !app.ctrl.Expanded(1) {
		t.Fatalf("expected steps 1 and 2 expanded")
	}
	if !strings.Contains(app.View(), "Role: architect") {
		t.Fatalf("expanded step should show its role")
	}
	app = press(t, app, "k", "e")
	if app.ctrl.Expanded(1) {
		t.Fatalf("expand key should collapse step 1")
	}
}

func TestSignatureOnlyOpensOnFinalStep(t *testing.T) {
	app, _ := newTestApp(t)
	app = press(t, app, "s")
	if app.Pad().IsOpen() || app.ctrl.SignatureOpen() {
		t.Fatalf("signature modal must stay closed before the final step")
	}
}

func TestSignatureCaptureCompletesFinalStep(t *testing.T) {
	app, ev := newTestApp(t, stepper.WithInitialStep(5))
	if !strings.Contains(app.View(), "Capture E-Signature") {
		t.Fatalf("final step should offer signature capture")
	}
	app = press(t, app, "a", "s")
	if !app.Pad().IsOpen() || !app.ctrl.SignatureOpen() {
		t.Fatalf("expected modal open")
	}
	if !strings.Contains(app.View(), "E-Signature Required") {
		t.Fatalf("modal view missing")
	}

	app = press(t, app, "enter")
	if !app.Pad().IsOpen() || app.Pad().Message() != signature.EmptyMessage {
		t.Fatalf("empty submit should keep the modal open with an error")
	}
	if !strings.Contains(app.View(), signature.EmptyMessage) {
		t.Fatalf("modal should render the empty error")
	}

	drawStroke(app)
	if !app.Pad().HasContent() || app.Pad().Drawing() {
		t.Fatalf("expected a finished stroke with content")
	}
	if !strings.Contains(app.View(), "█") {
		t.Fatalf("canvas should render ink cells")
	}

	app = press(t, app, "enter")
	if app.Pad().IsOpen() || app.ctrl.SignatureOpen() {
		t.Fatalf("submit should close the modal")
	}
	if _, ok := app.ctrl.Signature(); !ok {
		t.Fatalf("expected captured signature")
	}
	if !app.ctrl.Completed(5) || len(ev.signatures) != 1 || len(ev.completions) != 1 {
		t.Fatalf("signature should verify the final step: %+v %+v", ev.signatures, ev.completions)
	}
	if app.preview == nil || !strings.Contains(app.View(), "E-signature captured successfully") {
		t.Fatalf("expected signature preview")
	}
	app = press(t, app, "s")
	if app.Pad().IsOpen() {
		t.Fatalf("capture action should be gone once a signature exists")
	}
}

func TestEscCancelsWithoutCapture(t *testing.T) {
	app, ev := newTestApp(t, stepper.WithInitialStep(5))
	app = press(t, app, "s")
	drawStroke(app)
	app = press(t, app, "esc")
	if app.Pad().IsOpen() || app.ctrl.SignatureOpen() {
		t.Fatalf("esc should close the modal")
	}
	if _, ok := app.ctrl.Signature(); ok || len(ev.signatures) != 0 {
		t.Fatalf("cancel must not capture")
	}
}

func TestMotionOutsideCanvasEndsStroke(t *testing.T) {
	app, _ := newTestApp(t, stepper.WithInitialStep(5))
	app = press(t, app, "s")
	mouse(app, tea.MouseActionPress, 2, canvasTop+1)
	if !app.Pad().Drawing() {
		t.Fatalf("press inside canvas should begin a stroke")
	}
	mouse(app, tea.MouseActionMotion, canvasLeft+canvasCols+3, canvasTop+1)
	if app.Pad().Drawing() {
		t.Fatalf("leaving the canvas should end the stroke")
	}
	mouse(app, tea.MouseActionMotion, 10, canvasTop+1)
	if app.Pad().HasContent() {
		t.Fatalf("motion after the stroke ended must not draw")
	}
	mouse(app, tea.MouseActionPress, 0, 0)
	if app.Pad().Drawing() {
		t.Fatalf("press outside canvas must not begin a stroke")
	}
}

func TestClearKeyResetsCanvas(t *testing.T) {
	app, _ := newTestApp(t, stepper.WithInitialStep(5))
	app = press(t, app, "s")
	drawStroke(app)
	app = press(t, app, "c")
	if app.Pad().HasContent() {
		t.Fatalf("clear should drop content")
	}
	if strings.Contains(app.View(), "█") {
		t.Fatalf("cleared canvas should show only the guide")
	}
}

func TestLogPanelShowsJournal(t *testing.T) {
	book, err := logbook.New(filepath.Join(t.TempDir(), "journey.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	ctrl, err := stepper.New(stepper.DefaultCatalog(), stepper.WithObserver(notify.NewJournal(book)))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	app := press(t, sized(NewApp(ctrl, WithLogbook(book))), "a", "m", "n", "d")
	view := app.View()
	for _, want := range []string{"LOG · journey.log", "Step 1 completed", "Moving to step 2", "/design.pdf"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestQuitKey(t *testing.T) {
	app, _ := newTestApp(t)
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
