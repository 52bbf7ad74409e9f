package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	p := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if p.Theme != defaultTheme || p.PageSize != defaultPageSize {
		t.Fatalf("prefs = %#v, want defaults", p)
	}
}

func TestLoad_ClampsBogusPageSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.toml")
	if err := os.WriteFile(path, []byte("theme = \"dark\"\npage_size = 0\n"), 0o644); err != nil {
		t.Fatalf("write prefs: %v", err)
	}
	p := Load(path)
	if p.Theme != "dark" {
		t.Fatalf("theme = %q, want dark", p.Theme)
	}
	if p.PageSize != defaultPageSize {
		t.Fatalf("page size = %d, want clamped default", p.PageSize)
	}
}

func TestLoad_MalformedFileDegradesGracefully(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.toml")
	if err := os.WriteFile(path, []byte("theme = [broken"), 0o644); err != nil {
		t.Fatalf("write prefs: %v", err)
	}
	p := Load(path)
	if p.Theme != defaultTheme || p.PageSize != defaultPageSize {
		t.Fatalf("prefs after malformed file = %#v, want defaults", p)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")
	want := Prefs{Theme: "dark", PageSize: 50}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	got := Load(path)
	if got != want {
		t.Fatalf("Load after Save = %#v, want %#v", got, want)
	}
}
