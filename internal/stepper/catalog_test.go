package stepper

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCatalogIsDense(t *testing.T) {
	c := DefaultCatalog()
	if c.Len() != 5 {
		t.Fatalf("default catalog has %d steps, want 5", c.Len())
	}
	if _, err := NewCatalog(c.Steps()); err != nil {
		t.Fatalf("default catalog should validate: %v", err)
	}
	last, _ := c.Step(5)
	if last.Title != "Deployment" || last.RequiredRole != "devops" {
		t.Fatalf("unexpected final step: %+v", last)
	}
}

func TestParseCatalogYAML(t *testing.T) {
	data := strings.TrimSpace(`
steps:
  - number: 1
    title: Intake
    required_role: analyst
    download_url: /intake.pdf
  - number: 2
    title: Approval
    subtitle: Sign-off Phase
`)
	c, err := ParseCatalogYAML([]byte(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}
	first, _ := c.Step(1)
	if first.RequiredRole != "analyst" || first.DownloadURL != "/intake.pdf" {
		t.Fatalf("fields not decoded: %+v", first)
	}
}

func TestParseCatalogRejectsGapsAndEmpty(t *testing.T) {
	cases := map[string]string{
		"empty":    "",
		"no steps": "steps: []",
		"gap":      "steps:\n  - number: 1\n    title: A\n  - number: 3\n    title: C\n",
		"untitled": "steps:\n  - number: 1\n",
		"dup title": "steps:\n  - number: 1\n    title: Review\n  - number: 2\n    title: review\n",
		"typo key":  "steps:\n  - number: 1\n    title: A\n    requried_role: qa\n",
	}
	for name, data := range cases {
		if _, err := ParseCatalogYAML([]byte(data)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestParseCatalogEmptyDocument(t *testing.T) {
	for _, data := range []string{"", "  \n\t"} {
		if _, err := ParseCatalogYAML([]byte(data)); !errors.Is(err, ErrEmptyCatalog) {
			t.Fatalf("%q: expected ErrEmptyCatalog, got %v", data, err)
		}
	}
}

func TestLoadCatalogReader(t *testing.T) {
	c, err := LoadCatalogReader(strings.NewReader("steps:\n  - number: 1\n    title: Only\n"))
	if err != nil || c.Len() != 1 {
		t.Fatalf("load reader: len=%d err=%v", c.Len(), err)
	}
}

func TestLoadCatalogFileWrapsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steps.yaml")
	if err := os.WriteFile(path, []byte("steps:\n  - number: 2\n    title: B\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadCatalogFile(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error mentioning %s, got %v", path, err)
	}
}
