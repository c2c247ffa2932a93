package stepper

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/kingrea/signoff/internal/signature"
)

// ErrInvalidInitialStep is returned when the starting step is outside [1, N].
var ErrInvalidInitialStep = errors.New("stepper: initial step out of range")

// StepSet is a set of step numbers. Transitions never mutate a set in place;
// they replace it with an updated copy.
type StepSet map[int]struct{}

// NewStepSet builds a set from the given numbers.
func NewStepSet(steps ...int) StepSet {
	set := make(StepSet, len(steps))
	for _, n := range steps {
		set[n] = struct{}{}
	}
	return set
}

// Has reports membership of n.
func (s StepSet) Has(n int) bool {
	_, ok := s[n]
	return ok
}

// With returns a copy that includes n.
func (s StepSet) With(n int) StepSet {
	out := s.Clone()
	out[n] = struct{}{}
	return out
}

// Without returns a copy that excludes n.
func (s StepSet) Without(n int) StepSet {
	out := s.Clone()
	delete(out, n)
	return out
}

// Toggle returns a copy with n's membership flipped.
func (s StepSet) Toggle(n int) StepSet {
	if s.Has(n) {
		return s.Without(n)
	}
	return s.With(n)
}

// Clone returns an independent copy.
func (s StepSet) Clone() StepSet {
	out := make(StepSet, len(s))
	for n := range s {
		out[n] = struct{}{}
	}
	return out
}

// Sorted lists the members in ascending order.
func (s StepSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// State is the progress of one session. Completed is derived: it always
// equals AssigneeConfirmed ∩ ManagerVerified.
type State struct {
	Current           int
	Completed         StepSet
	AssigneeConfirmed StepSet
	ManagerVerified   StepSet
	Expanded          StepSet
	Signature         signature.Artifact
	Warning           bool
	SignatureOpen     bool

	// Started records the first time each step became current.
	Started map[int]time.Time
	// Finished records when each step last became complete.
	Finished map[int]time.Time
}

// NewState creates fresh progress positioned on initial.
func NewState(c Catalog, initial int, now time.Time) (State, error) {
	if !c.Contains(initial) {
		return State{}, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidInitialStep, initial, c.Len())
	}
	return State{
		Current:           initial,
		Completed:         NewStepSet(),
		AssigneeConfirmed: NewStepSet(),
		ManagerVerified:   NewStepSet(),
		Expanded:          NewStepSet(initial),
		Started:           map[int]time.Time{initial: now},
		Finished:          map[int]time.Time{},
	}, nil
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := s
	out.Completed = s.Completed.Clone()
	out.AssigneeConfirmed = s.AssigneeConfirmed.Clone()
	out.ManagerVerified = s.ManagerVerified.Clone()
	out.Expanded = s.Expanded.Clone()
	out.Started = cloneTimes(s.Started)
	out.Finished = cloneTimes(s.Finished)
	return out
}

// CanAdvance reports whether the current step carries both sign-offs.
func (s State) CanAdvance() bool {
	return s.AssigneeConfirmed.Has(s.Current) && s.ManagerVerified.Has(s.Current)
}

// HasSignature reports whether an artifact has been captured.
func (s State) HasSignature() bool {
	return !s.Signature.IsZero()
}

// Timing returns the start and optional finish time of step n. StartTime is
// zero for a step that was never current.
func (s State) Timing(n int) Timing {
	t := Timing{StartTime: s.Started[n]}
	if finished, ok := s.Finished[n]; ok {
		f := finished
		t.FinishTime = &f
	}
	return t
}

// Timing records when a step was first entered and when it was completed.
// Steps can be signed off without ever becoming current; their StartTime is
// the zero time and is left out of the JSON form.
type Timing struct {
	StartTime  time.Time  `json:"start_time,omitzero"`
	FinishTime *time.Time `json:"finish_time,omitempty"`
}

// Entered reports whether the step was ever current.
func (t Timing) Entered() bool { return !t.StartTime.IsZero() }

// Event is an input to Transition.
type Event interface {
	event()
}

type (
	// Advance moves to the next step when the current one is confirmed.
	Advance struct{}
	// Retreat moves to the previous step.
	Retreat struct{}
	// ToggleExpand flips the expansion of a step in the list.
	ToggleExpand struct{ Step int }
	// ConfirmAssignee toggles the assignee sign-off of a step.
	ConfirmAssignee struct{ Step int }
	// VerifyManager toggles the manager sign-off of a step.
	VerifyManager struct{ Step int }
	// OpenSignature shows the capture modal.
	OpenSignature struct{}
	// CloseSignature hides the capture modal.
	CloseSignature struct{}
	// CaptureSignature stores a submitted artifact as manager evidence.
	CaptureSignature struct{ Artifact signature.Artifact }
)

func (Advance) event()          {}
func (Retreat) event()          {}
func (ToggleExpand) event()     {}
func (ConfirmAssignee) event()  {}
func (VerifyManager) event()    {}
func (OpenSignature) event()    {}
func (CloseSignature) event()   {}
func (CaptureSignature) event() {}

// Effect is a notification produced by Transition for the host.
type Effect interface {
	effect()
}

type (
	// StepChanged is produced by every successful advance or retreat.
	StepChanged struct {
		Step     int
		Previous int
	}
	// StepCompleted is produced whenever manager verification flips a
	// step's completion flag.
	StepCompleted struct {
		Step      int
		Completed bool
		Timing    Timing
	}
	// SignatureCaptured is produced when an artifact is stored.
	SignatureCaptured struct {
		Step     int
		Artifact signature.Artifact
	}
)

func (StepChanged) effect()       {}
func (StepCompleted) effect()     {}
func (SignatureCaptured) effect() {}

// Transition applies e to s and returns the next state plus the
// notifications to emit. s is never modified.
func Transition(c Catalog, s State, e Event, now time.Time) (State, []Effect) {
	switch ev := e.(type) {
	case Advance:
		if s.Current >= c.Len() || !s.CanAdvance() {
			return s, nil
		}
		return moveTo(s, s.Current+1, now)
	case Retreat:
		if s.Current <= 1 {
			return s, nil
		}
		return moveTo(s, s.Current-1, now)
	case ToggleExpand:
		if !c.Contains(ev.Step) {
			return s, nil
		}
		next := s
		next.Expanded = s.Expanded.Toggle(ev.Step)
		return next, nil
	case ConfirmAssignee:
		if !c.Contains(ev.Step) {
			return s, nil
		}
		return confirmAssignee(s, ev.Step), nil
	case VerifyManager:
		if !c.Contains(ev.Step) {
			return s, nil
		}
		return verifyManager(s, ev.Step, now)
	case OpenSignature:
		next := s
		next.SignatureOpen = true
		return next, nil
	case CloseSignature:
		next := s
		next.SignatureOpen = false
		return next, nil
	case CaptureSignature:
		if ev.Artifact.IsZero() {
			return s, nil
		}
		next := s
		next.Signature = ev.Artifact
		next.SignatureOpen = false
		effects := []Effect{SignatureCaptured{Step: s.Current, Artifact: ev.Artifact}}
		next, more := verifyManager(next, next.Current, now)
		return next, append(effects, more...)
	default:
		return s, nil
	}
}

func moveTo(s State, target int, now time.Time) (State, []Effect) {
	next := s
	next.Current = target
	next.Expanded = NewStepSet(target)
	if _, seen := s.Started[target]; !seen {
		next.Started = cloneTimes(s.Started)
		next.Started[target] = now
	}
	return next, []Effect{StepChanged{Step: target, Previous: s.Current}}
}

func confirmAssignee(s State, n int) State {
	next := s
	next.Warning = false
	if s.AssigneeConfirmed.Has(n) {
		next.AssigneeConfirmed = s.AssigneeConfirmed.Without(n)
		next.ManagerVerified = s.ManagerVerified.Without(n)
		next.Completed = s.Completed.Without(n)
		if _, ok := s.Finished[n]; ok {
			next.Finished = cloneTimes(s.Finished)
			delete(next.Finished, n)
		}
		return next
	}
	next.AssigneeConfirmed = s.AssigneeConfirmed.With(n)
	return next
}

func verifyManager(s State, n int, now time.Time) (State, []Effect) {
	if !s.AssigneeConfirmed.Has(n) {
		next := s
		next.Warning = true
		return next, nil
	}
	next := s
	next.Warning = false
	next.ManagerVerified = s.ManagerVerified.Toggle(n)
	next.Finished = cloneTimes(s.Finished)
	completed := next.AssigneeConfirmed.Has(n) && next.ManagerVerified.Has(n)
	if completed {
		next.Completed = s.Completed.With(n)
		next.Finished[n] = now
	} else {
		next.Completed = s.Completed.Without(n)
		delete(next.Finished, n)
	}
	return next, []Effect{StepCompleted{Step: n, Completed: completed, Timing: next.Timing(n)}}
}

func cloneTimes(values map[int]time.Time) map[int]time.Time {
	out := make(map[int]time.Time, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
