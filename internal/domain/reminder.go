package domain

import (
	"fmt"
	"time"
)

// Reminder is a user's pending expiration notification.
// NextReminderAt is nil while configuration is in progress (timezone chosen,
// duration not yet supplied); such a record is never due and never persisted.
type Reminder struct {
	NextReminderAt *time.Time // UTC, nullable
	Timezone       string     // IANA zone, display and calculation metadata only
}

// Complete reports whether the reminder has both fields and may be persisted.
func (r Reminder) Complete() bool {
	return r.NextReminderAt != nil && r.Timezone != ""
}

// Due reports whether the reminder should fire at the given instant.
// A partial record is never due.
func (r Reminder) Due(now time.Time) bool {
	return r.NextReminderAt != nil && !r.NextReminderAt.After(now)
}

// ValidateTZ checks that the tz is a valid IANA location.
func ValidateTZ(tz string) (string, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidTimezone, tz)
	}
	return loc.String(), nil
}

// LocalizeTime formats t in the given timezone for display,
// e.g. "2024-01-01 03:04 PM".
func LocalizeTime(t time.Time, tz string) (string, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidTimezone, tz)
	}
	return t.In(loc).Format("2006-01-02 03:04 PM"), nil
}
