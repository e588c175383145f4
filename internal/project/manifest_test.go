package project

import (
	"os"
	"path/filepath"
	"testing"

	"isl/internal/limits"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[package]
name = "payments"
language_version = "1.2"

[parse]
strict = true
max_diagnostics = 50

[limits]
max_input_bytes = 1024
max_depth = 32
`)

	m, ok, err := Discover(dir)
	if err != nil || !ok {
		t.Fatalf("Discover = (%v, %v)", ok, err)
	}
	if m.Config.Package.Name != "payments" || m.Config.Package.LanguageVersion != "1.2" {
		t.Errorf("package = %+v", m.Config.Package)
	}
	if !m.Config.Parse.Strict || m.Config.Parse.MaxDiagnostics != 50 {
		t.Errorf("parse = %+v", m.Config.Parse)
	}
	if m.Root != dir {
		t.Errorf("root = %q, want %q", m.Root, dir)
	}

	l := m.Config.ResolveLimits()
	if l.MaxInputBytes != 1024 || l.MaxDepth != 32 {
		t.Errorf("overridden limits = %+v", l)
	}
	def := limits.Default()
	if l.MaxStringLen != def.MaxStringLen || l.MaxTokens != def.MaxTokens {
		t.Errorf("unset limits must keep defaults: %+v", l)
	}
}

func TestDiscoverWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"x\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := Discover(nested)
	if err != nil || !ok {
		t.Fatalf("Discover = (%v, %v)", ok, err)
	}
	if m.Root != root {
		t.Errorf("root = %q, want %q", m.Root, root)
	}
}

func TestDiscoverMissing(t *testing.T) {
	_, ok, err := Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("unexpected manifest in empty directory")
	}
}

func TestLoadRejectsMissingName(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[package]\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for missing package name")
	}
}
