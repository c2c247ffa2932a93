package stepper

// Marker is the per-step indicator shown in the step list.
type Marker string

const (
	MarkerCompleted Marker = "completed"
	MarkerActive    Marker = "active"
	MarkerPending   Marker = "pending"
)

// Marker classifies step n. Completion wins over being active.
func (c *Controller) Marker(n int) Marker {
	switch {
	case c.state.Completed.Has(n):
		return MarkerCompleted
	case c.state.Current == n:
		return MarkerActive
	default:
		return MarkerPending
	}
}

// OnFinalStep reports whether the last step is focused.
func (c *Controller) OnFinalStep() bool {
	return c.state.Current == c.catalog.Len()
}

// BackDisabled is true exactly on the first step.
func (c *Controller) BackDisabled() bool {
	return c.state.Current == 1
}

// NextDisabled is true on the last step or while the current step lacks a
// sign-off.
func (c *Controller) NextDisabled() bool {
	return c.OnFinalStep() || !c.CanAdvance()
}

// ShowGuidance reports whether the "both sign-offs required" banner applies.
func (c *Controller) ShowGuidance() bool {
	return !c.CanAdvance() && !c.OnFinalStep()
}

// Warning reports whether the ordering-violation banner is visible.
func (c *Controller) Warning() bool { return c.state.Warning }

// SignatureOpen reports whether the capture modal is visible.
func (c *Controller) SignatureOpen() bool { return c.state.SignatureOpen }

// Expanded reports whether step n shows its role and subtitle.
func (c *Controller) Expanded(n int) bool { return c.state.Expanded.Has(n) }

// AssigneeConfirmed reports the assignee sign-off of step n.
func (c *Controller) AssigneeConfirmed(n int) bool { return c.state.AssigneeConfirmed.Has(n) }

// ManagerVerified reports the manager sign-off of step n.
func (c *Controller) ManagerVerified(n int) bool { return c.state.ManagerVerified.Has(n) }

// Completed reports whether step n carries both sign-offs.
func (c *Controller) Completed(n int) bool { return c.state.Completed.Has(n) }
