package store

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/kristofferp8/paycut-reminder-bot/internal/domain"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.json")
	fs := NewFileStore(path, zap.NewNop())

	entries := []Entry{
		{UserID: "100", Reminder: reminderAt(t, "2024-03-01T10:00:00Z", "Europe/Stockholm")},
		{UserID: "200", Reminder: reminderAt(t, "2024-04-01T22:30:00Z", "America/New_York")},
	}
	if err := fs.Save(entries); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := fs.Load()
	if len(loaded) != 2 {
		t.Fatalf("want 2 records, got %d", len(loaded))
	}
	for _, e := range entries {
		got, ok := loaded[e.UserID]
		if !ok {
			t.Fatalf("user %s missing after round-trip", e.UserID)
		}
		if got.Timezone != e.Reminder.Timezone || !got.NextReminderAt.Equal(*e.Reminder.NextReminderAt) {
			t.Errorf("user %s: want %+v, got %+v", e.UserID, e.Reminder, got)
		}
	}
}

func TestFileStoreDropsPartialRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.json")
	fs := NewFileStore(path, zap.NewNop())

	entries := []Entry{
		{UserID: "100", Reminder: reminderAt(t, "2024-03-01T10:00:00Z", "UTC")},
		{UserID: "200", Reminder: domain.Reminder{Timezone: "UTC"}}, // duration not yet supplied
	}
	if err := fs.Save(entries); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := fs.Load()
	if len(loaded) != 1 {
		t.Fatalf("want 1 record, got %d", len(loaded))
	}
	if _, ok := loaded["200"]; ok {
		t.Error("partial record survived the round-trip")
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())
	if loaded := fs.Load(); len(loaded) != 0 {
		t.Errorf("want empty mapping, got %d records", len(loaded))
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	fs := NewFileStore(path, zap.NewNop())
	if loaded := fs.Load(); len(loaded) != 0 {
		t.Errorf("want empty mapping from corrupt file, got %d records", len(loaded))
	}
}

func TestFileStoreBadTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.json")
	artifact := `{"100": {"nextReminderAt": "yesterday-ish", "timezone": "UTC"}}`
	if err := os.WriteFile(path, []byte(artifact), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	fs := NewFileStore(path, zap.NewNop())
	if loaded := fs.Load(); len(loaded) != 0 {
		t.Errorf("want empty mapping from malformed timestamp, got %d records", len(loaded))
	}
}
