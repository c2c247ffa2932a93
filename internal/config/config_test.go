package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewConfigDefaultsWhenMissing(t *testing.T) {
	projectDir := t.TempDir()
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.Project.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", c.Project.Version)
	}
	if c.InitialStep() != 1 {
		t.Fatalf("expected default initial step 1, got %d", c.InitialStep())
	}
	if c.CatalogPath() != "" {
		t.Fatalf("expected built-in catalog, got %q", c.CatalogPath())
	}
	if c.SignatureExportDir() != "" {
		t.Fatalf("export should be disabled by default")
	}
}

func TestInitDirWritesLoadableDefaultConfig(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitDir(projectDir); err != nil {
		t.Fatalf("init dir: %v", err)
	}
	for _, dir := range []string{"logs", "signatures"} {
		if info, err := os.Stat(filepath.Join(projectDir, SignoffDir, dir)); err != nil || !info.IsDir() {
			t.Fatalf("expected %s directory: %v", dir, err)
		}
	}
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("load default config: %v", err)
	}
	if c.LogLevel() != "info" || c.InitialStep() != 1 {
		t.Fatalf("unexpected defaults: %+v", c.Project)
	}
	wantExport := filepath.Join(projectDir, SignoffDir, "signatures")
	if c.Project.Signature.ExportDir != wantExport {
		t.Fatalf("export dir = %s, want %s", c.Project.Signature.ExportDir, wantExport)
	}
}

func TestLoadProjectConfigParsesYaml(t *testing.T) {
	projectDir := t.TempDir()
	signoffDir := filepath.Join(projectDir, SignoffDir)
	if err := os.MkdirAll(signoffDir, 0o755); err != nil {
		t.Fatal(err)
	}
	configYAML := strings.TrimSpace(`
version: 1
initial_step: 3
catalog: flows/release.yaml
log_level: DEBUG
signature:
  export: true
  export_dir: out/sigs
`)
	if err := os.WriteFile(filepath.Join(signoffDir, "config.yaml"), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.InitialStep() != 3 {
		t.Fatalf("initial step = %d, want 3", c.InitialStep())
	}
	if c.CatalogPath() != filepath.Join(projectDir, "flows", "release.yaml") {
		t.Fatalf("catalog path not resolved: %s", c.CatalogPath())
	}
	if c.LogLevel() != "debug" {
		t.Fatalf("log level not normalized: %s", c.LogLevel())
	}
	if !strings.HasPrefix(c.SignatureExportDir(), projectDir) {
		t.Fatalf("expected absolute export dir, got %s", c.SignatureExportDir())
	}
}

func TestLoadProjectConfigValidation(t *testing.T) {
	cases := map[string]string{
		"negative step": "version: 1\ninitial_step: -2\n",
		"bad level":     "version: 1\nlog_level: loud\n",
		"bad yaml":      "version: [1\n",
	}
	for name, body := range cases {
		projectDir := t.TempDir()
		signoffDir := filepath.Join(projectDir, SignoffDir)
		if err := os.MkdirAll(signoffDir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(signoffDir, "config.yaml"), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := NewConfig(projectDir); err == nil {
			t.Fatalf("%s: expected validation error but got none", name)
		}
	}
}
