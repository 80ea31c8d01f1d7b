package store

import (
	"sort"
	"sync"
	"time"

	"github.com/kristofferp8/paycut-reminder-bot/internal/domain"
)

// Entry pairs a user with their reminder for batch operations.
type Entry struct {
	UserID   string
	Reminder domain.Reminder
}

// Store is the in-memory authoritative mapping of user → reminder.
// Every operation takes the single guard, reads included, so the sweep and
// the command handlers never observe a torn map.
type Store struct {
	mu        sync.Mutex
	reminders map[string]domain.Reminder
}

// New creates an empty Store.
func New() *Store {
	return &Store{reminders: make(map[string]domain.Reminder)}
}

// Replace swaps in the full mapping loaded from durable storage.
func (s *Store) Replace(m map[string]domain.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders = make(map[string]domain.Reminder, len(m))
	for id, r := range m {
		s.reminders[id] = r
	}
}

// Set inserts or replaces the user's reminder.
func (s *Store) Set(userID string, r domain.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders[userID] = r
}

// Get returns the user's reminder, if any.
func (s *Store) Get(userID string) (domain.Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reminders[userID]
	return r, ok
}

// Remove deletes the user's reminder. Removing an absent user is a no-op.
func (s *Store) Remove(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reminders, userID)
}

// Len returns the number of records, partial ones included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reminders)
}

// PopDue removes and returns every reminder due at now, sorted by user ID.
// Selection and removal happen in one critical section, so a reminder is
// handed to at most one caller. Partial records are left untouched.
func (s *Store) PopDue(now time.Time) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []Entry
	for id, r := range s.reminders {
		if r.Due(now) {
			due = append(due, Entry{UserID: id, Reminder: r})
			delete(s.reminders, id)
		}
	}
	sortEntries(due)
	return due
}

// Snapshot returns a point-in-time copy of all records, sorted by user ID.
func (s *Store) Snapshot() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, 0, len(s.reminders))
	for id, r := range s.reminders {
		entries = append(entries, Entry{UserID: id, Reminder: r})
	}
	sortEntries(entries)
	return entries
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].UserID < entries[j].UserID })
}
