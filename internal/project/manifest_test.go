package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "veld.toml"), []byte(contents), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
}

func TestLoadTargetFromNestedDir(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	target, err := LoadTarget(nested)
	if err != nil {
		t.Fatalf("LoadTarget: %v", err)
	}
	if target.Name != "demo" {
		t.Fatalf("expected name %q, got %q", "demo", target.Name)
	}
	if target.Root != root {
		t.Fatalf("expected root %q, got %q", root, target.Root)
	}
	if target.ID.URI == "" {
		t.Fatalf("expected non-empty target URI")
	}
}

func TestLoadTargetNameFallsBackToDir(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "")

	target, err := LoadTarget(root)
	if err != nil {
		t.Fatalf("LoadTarget: %v", err)
	}
	if target.Name != filepath.Base(root) {
		t.Fatalf("expected fallback name %q, got %q", filepath.Base(root), target.Name)
	}
}

func TestLoadTargetMissingManifest(t *testing.T) {
	_, err := LoadTarget(t.TempDir())
	if !errors.Is(err, ErrNoManifest) {
		t.Fatalf("expected ErrNoManifest, got %v", err)
	}
}
