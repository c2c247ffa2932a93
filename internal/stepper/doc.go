// Package stepper implements the two-tier sign-off state machine behind the
// approval workflow. Progress moves strictly through a fixed catalog of steps;
// a step is complete only while both its assignee confirmation and manager
// verification are present. Transition is a pure function over State so the
// rules can be exercised without any rendering layer; Controller wraps it with
// a clock, a session id, and host notifications.
package stepper
