package repl

import (
	"path/filepath"
	"testing"
)

func newTestHistory(t *testing.T) *History {
	t.Helper()
	return &History{
		maxSize: 1000,
		file:    filepath.Join(t.TempDir(), "history"),
	}
}

func TestHistory_AddAndGet(t *testing.T) {
	h := newTestHistory(t)

	h.Add("snippet list")
	h.Add("snippet get greeting")

	if got := h.Get(0); got != "snippet get greeting" {
		t.Errorf("Get(0) = %q, want most recent", got)
	}
	if got := h.Get(1); got != "snippet list" {
		t.Errorf("Get(1) = %q, want %q", got, "snippet list")
	}
	if got := h.Get(2); got != "" {
		t.Errorf("Get(2) = %q, want empty for out of range", got)
	}
	if got := h.Get(-1); got != "" {
		t.Errorf("Get(-1) = %q, want empty for out of range", got)
	}
}

func TestHistory_MaxSizeEvictsOldest(t *testing.T) {
	h := newTestHistory(t)
	h.maxSize = 3

	h.Add("one")
	h.Add("two")
	h.Add("three")
	h.Add("four")

	if len(h.entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(h.entries))
	}
	if got := h.Get(2); got != "two" {
		t.Errorf("oldest entry = %q, want %q", got, "two")
	}
}

func TestHistory_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "nested", "history")

	h := &History{maxSize: 1000, file: file}
	h.Add("snippet list")
	h.Add("collection export")

	if err := h.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded := &History{maxSize: 1000, file: file}
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(loaded.entries) != 2 {
		t.Fatalf("loaded entries = %d, want 2", len(loaded.entries))
	}
	if got := loaded.Get(0); got != "collection export" {
		t.Errorf("Get(0) = %q, want %q", got, "collection export")
	}
}

func TestHistory_LoadMissingFileIsNoop(t *testing.T) {
	h := newTestHistory(t)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}
	if len(h.entries) != 0 {
		t.Errorf("entries = %d, want 0", len(h.entries))
	}
}
