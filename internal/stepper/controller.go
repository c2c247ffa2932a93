package stepper

import (
	"time"

	"github.com/google/uuid"

	"github.com/kingrea/signoff/internal/signature"
)

// Controller owns the progress state of one session and reports lifecycle
// notifications to its Observer. It is meant to be driven from a single
// event loop and is not safe for concurrent use.
type Controller struct {
	catalog   Catalog
	state     State
	observer  Observer
	clock     func() time.Time
	sessionID string
	initial   int
}

// Option customizes Controller construction.
type Option func(*Controller)

// WithInitialStep positions a new session on step n (default 1).
func WithInitialStep(n int) Option {
	return func(c *Controller) {
		c.initial = n
	}
}

// WithObserver registers the host notification sink.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithClock allows tests to control timestamps.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithSessionID overrides the generated session identifier.
func WithSessionID(id string) Option {
	return func(c *Controller) {
		if id != "" {
			c.sessionID = id
		}
	}
}

// New creates a controller over catalog. It fails with ErrInvalidInitialStep
// when the initial step is outside the catalog.
func New(catalog Catalog, opts ...Option) (*Controller, error) {
	c := &Controller{
		catalog:   catalog,
		observer:  ObserverFuncs{},
		clock:     func() time.Time { return time.Now().UTC() },
		sessionID: uuid.NewString(),
		initial:   1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	state, err := NewState(catalog, c.initial, c.clock())
	if err != nil {
		return nil, err
	}
	c.state = state
	return c, nil
}

// Dispatch applies an event and forwards the resulting notifications.
func (c *Controller) Dispatch(e Event) {
	next, effects := Transition(c.catalog, c.state, e, c.clock())
	c.state = next
	for _, eff := range effects {
		c.notify(eff)
	}
}

func (c *Controller) notify(eff Effect) {
	switch e := eff.(type) {
	case StepChanged:
		c.observer.StepChanged(StepChange{SessionID: c.sessionID, Step: e.Step, Previous: e.Previous})
	case StepCompleted:
		c.observer.StepCompleted(StepCompletion{SessionID: c.sessionID, Step: e.Step, Completed: e.Completed, Timing: e.Timing})
	case SignatureCaptured:
		c.observer.SignatureCaptured(SignatureEvent{SessionID: c.sessionID, Step: e.Step, Artifact: e.Artifact})
	}
}

// Advance moves forward when the current step is fully confirmed.
func (c *Controller) Advance() { c.Dispatch(Advance{}) }

// Retreat moves back one step unless already on the first.
func (c *Controller) Retreat() { c.Dispatch(Retreat{}) }

// ToggleExpand flips the list expansion of step n.
func (c *Controller) ToggleExpand(n int) { c.Dispatch(ToggleExpand{Step: n}) }

// ConfirmAssignee toggles the assignee sign-off; turning it off also revokes
// the manager sign-off of the same step.
func (c *Controller) ConfirmAssignee(n int) { c.Dispatch(ConfirmAssignee{Step: n}) }

// VerifyManager toggles the manager sign-off. Without an assignee sign-off it
// raises the warning and changes nothing else.
func (c *Controller) VerifyManager(n int) { c.Dispatch(VerifyManager{Step: n}) }

// OpenSignature shows the capture modal.
func (c *Controller) OpenSignature() { c.Dispatch(OpenSignature{}) }

// CloseSignature hides the capture modal.
func (c *Controller) CloseSignature() { c.Dispatch(CloseSignature{}) }

// CaptureSignature stores the artifact and records it as manager evidence for
// the current step.
func (c *Controller) CaptureSignature(a signature.Artifact) {
	c.Dispatch(CaptureSignature{Artifact: a})
}

// CanAdvance reports whether the current step carries both sign-offs.
func (c *Controller) CanAdvance() bool { return c.state.CanAdvance() }

// State returns a copy of the current progress.
func (c *Controller) State() State { return c.state.Clone() }

// Catalog returns the step catalog.
func (c *Controller) Catalog() Catalog { return c.catalog }

// SessionID identifies this session in notifications.
func (c *Controller) SessionID() string { return c.sessionID }

// Current returns the focused step number.
func (c *Controller) Current() int { return c.state.Current }

// CurrentStep returns the catalog entry of the focused step.
func (c *Controller) CurrentStep() Step {
	step, _ := c.catalog.Step(c.state.Current)
	return step
}

// Signature returns the captured artifact, if any.
func (c *Controller) Signature() (signature.Artifact, bool) {
	return c.state.Signature, c.state.HasSignature()
}
