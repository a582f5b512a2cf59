package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadProjectManifest_WalksUp(t *testing.T) {
	root := t.TempDir()
	manifest := `[package]
name = "telemetry"

[gen]
out_dir = "include"
`
	if err := os.WriteFile(filepath.Join(root, "rplc.toml"), []byte(manifest), 0o600); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "defs", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := loadProjectManifest(nested)
	if err != nil || !ok {
		t.Fatalf("loadProjectManifest = %v, %v", ok, err)
	}
	if m.Config.Package.Name != "telemetry" {
		t.Errorf("name = %q", m.Config.Package.Name)
	}
	if got, want := manifestOutDir(m), filepath.Join(root, "include"); got != want {
		t.Errorf("manifestOutDir = %q, want %q", got, want)
	}
}

func TestLoadProjectManifest_Absent(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := loadProjectManifest(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("manifest reported found in an empty tree")
	}
}

func TestLoadProjectConfig_RequiresPackageName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rplc.toml")
	if err := os.WriteFile(path, []byte("[gen]\nout_dir = \"x\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := loadProjectConfig(path)
	if err == nil || !strings.Contains(err.Error(), "[package]") {
		t.Errorf("err = %v, want missing [package]", err)
	}
}

func TestManifestOutDir_Empty(t *testing.T) {
	if got := manifestOutDir(nil); got != "" {
		t.Errorf("manifestOutDir(nil) = %q", got)
	}
	m := &projectManifest{Root: "/tmp/x"}
	if got := manifestOutDir(m); got != "" {
		t.Errorf("manifestOutDir without out_dir = %q", got)
	}
}
