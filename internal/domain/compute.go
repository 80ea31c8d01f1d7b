package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidDuration = errors.New("invalid duration")
	ErrInvalidTimezone = errors.New("invalid timezone")
)

// ComputeReminder converts a remaining duration and a timezone into the
// expiration instant and the instant the user should be notified, both UTC.
//
// The lead time depends on where the expiration lands in the user's local
// day: a morning expiration (local hour 0–11) gets a full day's notice, an
// afternoon or evening one gets half a day's.
func ComputeReminder(now time.Time, tz string, daysLeft, hoursLeft int) (expiresAt, notifyAt time.Time, err error) {
	if daysLeft < 0 || hoursLeft < 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: days=%d hours=%d", ErrInvalidDuration, daysLeft, hoursLeft)
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", ErrInvalidTimezone, tz)
	}

	expiresAt = now.UTC().Add(time.Duration(daysLeft)*24*time.Hour + time.Duration(hoursLeft)*time.Hour)

	if h := expiresAt.In(loc).Hour(); h < 12 {
		notifyAt = expiresAt.Add(-24 * time.Hour)
	} else {
		notifyAt = expiresAt.Add(-12 * time.Hour)
	}
	return expiresAt, notifyAt, nil
}

// ParseRemaining parses the free-text days/hours values collected from the
// user. Both must be non-negative integers.
func ParseRemaining(daysText, hoursText string) (days, hours int, err error) {
	days, err = strconv.Atoi(strings.TrimSpace(daysText))
	if err != nil || days < 0 {
		return 0, 0, fmt.Errorf("%w: days %q", ErrInvalidDuration, daysText)
	}
	hours, err = strconv.Atoi(strings.TrimSpace(hoursText))
	if err != nil || hours < 0 {
		return 0, 0, fmt.Errorf("%w: hours %q", ErrInvalidDuration, hoursText)
	}
	return days, hours, nil
}
