package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	p := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if p.PageSize != 20 {
		t.Fatalf("PageSize = %d, want default 20", p.PageSize)
	}
	if p.LastSearch != "" {
		t.Fatalf("LastSearch = %q, want empty", p.LastSearch)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")

	want := Prefs{PageSize: 50, LastSearch: "alien"}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got := Load(path)
	if got != want {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}
}

func TestLoad_InvalidValuesDegradeGracefully(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("page_size = -3\n"), 0o644); err != nil {
		t.Fatalf("write prefs: %v", err)
	}
	if got := Load(path).PageSize; got != 20 {
		t.Fatalf("PageSize = %d, want default for non-positive value", got)
	}

	if err := os.WriteFile(path, []byte("page_size = [broken"), 0o644); err != nil {
		t.Fatalf("write prefs: %v", err)
	}
	if got := Load(path).PageSize; got != 20 {
		t.Fatalf("PageSize = %d, want default for unparseable file", got)
	}
}
