package logbook

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestTailReturnsRecentLinesAndTotal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journey.log")
	book, err := New(path)
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	for i := 0; i < 5; i++ {
		book.Info("entry-%d", i)
	}
	lines, total := book.Tail(3)
	if total != 5 {
		t.Fatalf("total lines = %d, want 5", total)
	}
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for idx, want := range []string{"entry-2", "entry-3", "entry-4"} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing %s", idx, lines[idx], want)
		}
	}
}

func TestAppendTagsLevel(t *testing.T) {
	book, err := New(filepath.Join(t.TempDir(), "nested", "journey.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	book.Warn("Step %d uncompleted", 2)
	lines, _ := book.Tail(1)
	if len(lines) != 1 || !strings.Contains(lines[0], "WARN") || !strings.HasSuffix(lines[0], "Step 2 uncompleted") {
		t.Fatalf("unexpected line: %v", lines)
	}
}

func TestNilLogbookIsSafe(t *testing.T) {
	var book *Logbook
	book.Info("ignored")
	if lines, total := book.Tail(5); lines != nil || total != 0 {
		t.Fatalf("nil logbook tail = %v, %d", lines, total)
	}
}

func TestEntriesParseClockedLines(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	book, err := New(filepath.Join(t.TempDir(), "journey.log"), WithClock(func() time.Time { return fixed }))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	book.Info("Moving to step %d", 2)
	book.Error("Signature export failed: %s", "disk full")
	entries, total := book.Entries(5)
	if total != 2 || len(entries) != 2 {
		t.Fatalf("entries = %d/%d, want 2/2", len(entries), total)
	}
	if !entries[0].Time.Equal(fixed) || entries[0].Level != LevelInfo || entries[0].Message != "Moving to step 2" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Level != LevelError || entries[1].Message != "Signature export failed: disk full" {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

func TestParseEntryFallsBackToMessage(t *testing.T) {
	got := ParseEntry("free text line")
	if got.Level != LevelInfo || got.Message != "free text line" || !got.Time.IsZero() {
		t.Fatalf("unexpected fallback entry: %+v", got)
	}
}
