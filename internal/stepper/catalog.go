// internal/stepper/catalog.go
//
// The step catalog is the fixed, ordered list of phases a session walks
// through. Array order is the only legal progression path.

package stepper

import (
	"fmt"
	"strings"
)

// Step is one immutable catalog entry.
type Step struct {
	Number       int    `json:"number" yaml:"number"`
	Title        string `json:"title" yaml:"title"`
	Subtitle     string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	DownloadURL  string `json:"download_url,omitempty" yaml:"download_url,omitempty"`
	RequiredRole string `json:"required_role,omitempty" yaml:"required_role,omitempty"`
}

// Catalog is a validated, read-only sequence of steps numbered 1..N.
type Catalog struct {
	steps []Step
}

// NewCatalog validates and copies the provided steps.
func NewCatalog(steps []Step) (Catalog, error) {
	if len(steps) == 0 {
		return Catalog{}, fmt.Errorf("stepper: catalog requires at least one step")
	}
	out := make([]Step, len(steps))
	titles := make(map[string]int, len(steps))
	for i, step := range steps {
		step.Title = strings.TrimSpace(step.Title)
		step.RequiredRole = strings.TrimSpace(step.RequiredRole)
		if step.Number != i+1 {
			return Catalog{}, fmt.Errorf("stepper: step[%d] has number %d, want %d", i, step.Number, i+1)
		}
		if step.Title == "" {
			return Catalog{}, fmt.Errorf("stepper: step %d: title is required", step.Number)
		}
		key := strings.ToLower(step.Title)
		if prev, dup := titles[key]; dup {
			return Catalog{}, fmt.Errorf("stepper: step %d: title %q already used by step %d", step.Number, step.Title, prev)
		}
		titles[key] = step.Number
		out[i] = step
	}
	return Catalog{steps: out}, nil
}

// DefaultCatalog returns the five-phase delivery workflow.
func DefaultCatalog() Catalog {
	return Catalog{steps: []Step{
		{
			Number:       1,
			Title:        "Download Requirements",
			Subtitle:     "Project Documentation Phase",
			Description:  "Download and review all project requirements and specifications.",
			DownloadURL:  "/requirements.pdf",
			RequiredRole: "developer",
		},
		{
			Number:       2,
			Title:        "System Design",
			Subtitle:     "Architecture Planning Phase",
			Description:  "Review and approve the system architecture design documents.",
			DownloadURL:  "/design.pdf",
			RequiredRole: "architect",
		},
		{
			Number:       3,
			Title:        "Implementation",
			Subtitle:     "Development Phase",
			Description:  "Download the implementation guidelines and coding standards.",
			DownloadURL:  "/implementation.pdf",
			RequiredRole: "developer",
		},
		{
			Number:       4,
			Title:        "Testing",
			Subtitle:     "QA Phase",
			Description:  "Execute test cases and document results.",
			DownloadURL:  "/testing.pdf",
			RequiredRole: "qa",
		},
		{
			Number:       5,
			Title:        "Deployment",
			Subtitle:     "Production Phase",
			Description:  "Deploy to production environment.",
			DownloadURL:  "/deployment.pdf",
			RequiredRole: "devops",
		},
	}}
}

// Len returns N, the number of steps.
func (c Catalog) Len() int { return len(c.steps) }

// Contains reports whether n is a valid step number.
func (c Catalog) Contains(n int) bool { return n >= 1 && n <= len(c.steps) }

// Step returns the entry numbered n.
func (c Catalog) Step(n int) (Step, bool) {
	if !c.Contains(n) {
		return Step{}, false
	}
	return c.steps[n-1], true
}

// Steps returns a copy of the ordered entries.
func (c Catalog) Steps() []Step {
	out := make([]Step, len(c.steps))
	copy(out, c.steps)
	return out
}
