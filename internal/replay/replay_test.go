package replay

import (
	"path/filepath"
	"testing"

	"github.com/paopaochahu09/SmartPort-YYg/internal/core"
)

func TestWriteThenReadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl.zst")
	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	want := []FrameEntry{
		{Frame: 0, Money: 25000, RobotPos: map[int]core.Point{1: {Row: 0, Col: 0}}, Commands: 1},
		{Frame: 1, Money: 25100, ShipPos: map[int]core.Point{1: {Row: 3, Col: 4}}, Collisions: 1, Commands: 2},
	}
	for _, e := range want {
		if err := w.WriteFrame(e); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Frame != want[i].Frame || got[i].Money != want[i].Money {
			t.Fatalf("entry %d mismatch: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestReadAllOnMissingFileErrors(t *testing.T) {
	if _, err := ReadAll(filepath.Join(t.TempDir(), "nope.jsonl.zst")); err == nil {
		t.Fatalf("expected an error reading a nonexistent journal")
	}
}
