package stepper

import "github.com/kingrea/signoff/internal/signature"

// StepCompletion reports a flip of a step's completion flag.
type StepCompletion struct {
	SessionID string `json:"session_id"`
	Step      int    `json:"step"`
	Completed bool   `json:"completed"`
	Timing    Timing `json:"timing"`
}

// StepChange reports a successful advance or retreat.
type StepChange struct {
	SessionID string `json:"session_id"`
	Step      int    `json:"step"`
	Previous  int    `json:"previous"`
}

// SignatureEvent reports a captured signature artifact.
type SignatureEvent struct {
	SessionID string             `json:"session_id"`
	Step      int                `json:"step"`
	Artifact  signature.Artifact `json:"-"`
}

// Observer receives controller notifications. Calls are fire-and-forget:
// the controller ignores whatever the observer does with them.
type Observer interface {
	StepCompleted(StepCompletion)
	StepChanged(StepChange)
	SignatureCaptured(SignatureEvent)
}

// ObserverFuncs adapts optional functions into an Observer.
type ObserverFuncs struct {
	OnStepComplete     func(StepCompletion)
	OnStepChange       func(StepChange)
	OnSignatureCapture func(SignatureEvent)
}

// StepCompleted calls OnStepComplete when set.
func (f ObserverFuncs) StepCompleted(e StepCompletion) {
	if f.OnStepComplete != nil {
		f.OnStepComplete(e)
	}
}

// StepChanged calls OnStepChange when set.
func (f ObserverFuncs) StepChanged(e StepChange) {
	if f.OnStepChange != nil {
		f.OnStepChange(e)
	}
}

// SignatureCaptured calls OnSignatureCapture when set.
func (f ObserverFuncs) SignatureCaptured(e SignatureEvent) {
	if f.OnSignatureCapture != nil {
		f.OnSignatureCapture(e)
	}
}

// Observers fans notifications out in order.
type Observers []Observer

// StepCompleted forwards e to every observer.
func (o Observers) StepCompleted(e StepCompletion) {
	for _, obs := range o {
		if obs != nil {
			obs.StepCompleted(e)
		}
	}
}

// StepChanged forwards e to every observer.
func (o Observers) StepChanged(e StepChange) {
	for _, obs := range o {
		if obs != nil {
			obs.StepChanged(e)
		}
	}
}

// SignatureCaptured forwards e to every observer.
func (o Observers) SignatureCaptured(e SignatureEvent) {
	for _, obs := range o {
		if obs != nil {
			obs.SignatureCaptured(e)
		}
	}
}
