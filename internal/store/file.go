package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kristofferp8/paycut-reminder-bot/internal/domain"
)

// reminderRecord is the on-disk shape of one reminder. The artifact is a
// single JSON object keyed by stringified user ID.
type reminderRecord struct {
	NextReminderAt string `json:"nextReminderAt"` // RFC 3339, UTC
	Timezone       string `json:"timezone"`       // IANA zone identifier
}

// FileStore persists the full reminder mapping to a single JSON file.
// Saves always write the complete mapping; last writer wins.
type FileStore struct {
	path string
	log  *zap.Logger
	mu   sync.Mutex
}

// NewFileStore creates a FileStore writing to path. The parent directory is
// created on first save.
func NewFileStore(path string, log *zap.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

// Load reads the persisted mapping. A missing file yields an empty mapping;
// so does a corrupt one, after a warning, so a damaged artifact never blocks
// startup.
func (f *FileStore) Load() map[string]domain.Reminder {
	f.mu.Lock()
	defer f.mu.Unlock()

	reminders := make(map[string]domain.Reminder)

	data, err := os.ReadFile(f.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			f.log.Warn("reminder file unreadable, starting empty", zap.String("path", f.path), zap.Error(err))
		}
		return reminders
	}
	if len(data) == 0 {
		return reminders
	}

	var raw map[string]reminderRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		f.log.Warn("reminder file corrupted, starting empty", zap.String("path", f.path), zap.Error(err))
		return reminders
	}

	for id, rec := range raw {
		at, err := time.Parse(time.RFC3339, rec.NextReminderAt)
		if err != nil {
			f.log.Warn("reminder file corrupted, starting empty",
				zap.String("path", f.path), zap.String("userID", id), zap.Error(err))
			return make(map[string]domain.Reminder)
		}
		at = at.UTC()
		reminders[id] = domain.Reminder{NextReminderAt: &at, Timezone: rec.Timezone}
	}
	return reminders
}

// Save writes the complete mapping to disk. Partial records (timezone chosen,
// duration not yet supplied) are dropped from the persisted view, so a crash
// mid-configuration loses only the in-progress setup. The write goes to a
// temp file first and is renamed into place so a crash never truncates the
// artifact.
func (f *FileStore) Save(entries []Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw := make(map[string]reminderRecord, len(entries))
	for _, e := range entries {
		if !e.Reminder.Complete() {
			continue
		}
		raw[e.UserID] = reminderRecord{
			NextReminderAt: e.Reminder.NextReminderAt.UTC().Format(time.RFC3339),
			Timezone:       e.Reminder.Timezone,
		}
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal reminders: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write reminders: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace reminders: %w", err)
	}
	return nil
}
