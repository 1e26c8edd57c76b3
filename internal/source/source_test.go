package source

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/theirongolddev/buyrent/internal/config"
	"github.com/theirongolddev/buyrent/internal/projection"
)

func writeScenario(t *testing.T, dir, rel, body string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestScanDir_FindsTomlSorted(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "zurich.toml", "")
	writeScenario(t, dir, "basel.toml", "")
	writeScenario(t, dir, "cantons/bern.toml", "")
	writeScenario(t, dir, "notes.md", "")
	writeScenario(t, dir, ".hidden.toml", "")
	writeScenario(t, dir, ".git/config.toml", "")

	files, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	want := []string{"basel", "cantons/bern", "zurich"}
	if len(files) != len(want) {
		t.Fatalf("got %d files %+v, want %v", len(files), files, want)
	}
	for i, f := range files {
		if f.Name != want[i] {
			t.Fatalf("files[%d].Name = %q, want %q", i, f.Name, want[i])
		}
	}
}

func TestScanDir_MissingDir(t *testing.T) {
	files, err := ScanDir(filepath.Join(t.TempDir(), "absent"))
	if err != nil || files != nil {
		t.Fatalf("ScanDir(missing) = %v, %v; want nil, nil", files, err)
	}
}

func TestLoadAll_CollectsFileErrors(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "a-cheap-rent.toml", "monthly_rent = 1500\n")
	writeScenario(t, dir, "b-dear-rent.toml", "monthly_rent = 6000\n")
	writeScenario(t, dir, "c-broken.toml", "monthly_rent = \n")
	writeScenario(t, dir, "d-invalid.toml", "down_payment = 2000000\n")

	var calls atomic.Int64
	res, err := LoadAll(dir, config.DefaultParameters(), func(current, total int) {
		calls.Add(1)
		if total != 4 || current < 1 || current > total {
			t.Errorf("progress(%d, %d) out of range", current, total)
		}
	})
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	if res.TotalFiles != 4 || calls.Load() != 4 {
		t.Fatalf("TotalFiles = %d, progress calls = %d; want 4, 4", res.TotalFiles, calls.Load())
	}
	if len(res.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(res.Entries))
	}
	if res.Entries[0].File.Name != "a-cheap-rent" || res.Entries[1].File.Name != "b-dear-rent" {
		t.Fatalf("entries out of order: %q, %q", res.Entries[0].File.Name, res.Entries[1].File.Name)
	}
	if res.Entries[0].Result.Params.MonthlyRent != 1500 {
		t.Fatalf("override not applied: %+v", res.Entries[0].Result.Params)
	}

	if len(res.FileErrors) != 2 {
		t.Fatalf("got %d file errors, want 2", len(res.FileErrors))
	}
	if res.FileErrors[0].File.Name != "c-broken" {
		t.Fatalf("FileErrors[0] = %q, want c-broken", res.FileErrors[0].File.Name)
	}
	if !errors.Is(res.FileErrors[1], projection.ErrInvalidParameter) {
		t.Fatalf("FileErrors[1] = %v, want ErrInvalidParameter", res.FileErrors[1])
	}
}

func TestLoadAll_EmptyDir(t *testing.T) {
	res, err := LoadAll(t.TempDir(), config.DefaultParameters(), nil)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if res.TotalFiles != 0 || len(res.Entries) != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}
