package domain

import (
	"errors"
	"testing"
	"time"
)

func mustUTC(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return ts.UTC()
}

func TestComputeReminder_MorningExpiration(t *testing.T) {
	now := mustUTC(t, "2024-01-01T00:00:00Z")

	expires, notify, err := ComputeReminder(now, "UTC", 0, 10)
	if err != nil {
		t.Fatalf("ComputeReminder: %v", err)
	}
	if want := mustUTC(t, "2024-01-01T10:00:00Z"); !expires.Equal(want) {
		t.Errorf("expires: want %s, got %s", want, expires)
	}
	// Local hour 10 → full day's notice.
	if want := mustUTC(t, "2023-12-31T10:00:00Z"); !notify.Equal(want) {
		t.Errorf("notify: want %s, got %s", want, notify)
	}
}

func TestComputeReminder_EveningExpiration(t *testing.T) {
	now := mustUTC(t, "2024-01-01T00:00:00Z")

	expires, notify, err := ComputeReminder(now, "UTC", 0, 18)
	if err != nil {
		t.Fatalf("ComputeReminder: %v", err)
	}
	if want := mustUTC(t, "2024-01-01T18:00:00Z"); !expires.Equal(want) {
		t.Errorf("expires: want %s, got %s", want, expires)
	}
	// Local hour 18 → half day's notice.
	if want := mustUTC(t, "2024-01-01T06:00:00Z"); !notify.Equal(want) {
		t.Errorf("notify: want %s, got %s", want, notify)
	}
}

func TestComputeReminder_ZoneShiftsBoundary(t *testing.T) {
	// 18:00 UTC is 13:00 in New York (EST, UTC-5): afternoon there too,
	// but 18:00 UTC on the same day is 05:00 next morning in Sydney (UTC+11),
	// which flips the rule to a full day's notice.
	now := mustUTC(t, "2024-01-01T00:00:00Z")

	_, notifyNY, err := ComputeReminder(now, "America/New_York", 0, 18)
	if err != nil {
		t.Fatalf("ComputeReminder: %v", err)
	}
	if want := mustUTC(t, "2024-01-01T06:00:00Z"); !notifyNY.Equal(want) {
		t.Errorf("New York notify: want %s, got %s", want, notifyNY)
	}

	_, notifySyd, err := ComputeReminder(now, "Australia/Sydney", 0, 18)
	if err != nil {
		t.Fatalf("ComputeReminder: %v", err)
	}
	if want := mustUTC(t, "2023-12-31T18:00:00Z"); !notifySyd.Equal(want) {
		t.Errorf("Sydney notify: want %s, got %s", want, notifySyd)
	}
}

func TestComputeReminder_Deterministic(t *testing.T) {
	now := mustUTC(t, "2024-06-15T09:30:00Z")
	e1, n1, err := ComputeReminder(now, "Europe/Stockholm", 5, 12)
	if err != nil {
		t.Fatalf("ComputeReminder: %v", err)
	}
	e2, n2, err := ComputeReminder(now, "Europe/Stockholm", 5, 12)
	if err != nil {
		t.Fatalf("ComputeReminder: %v", err)
	}
	if !e1.Equal(e2) || !n1.Equal(n2) {
		t.Errorf("not deterministic: (%s,%s) vs (%s,%s)", e1, n1, e2, n2)
	}
}

func TestComputeReminder_InvalidInputs(t *testing.T) {
	now := mustUTC(t, "2024-01-01T00:00:00Z")

	if _, _, err := ComputeReminder(now, "UTC", -1, 0); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("negative days: want ErrInvalidDuration, got %v", err)
	}
	if _, _, err := ComputeReminder(now, "UTC", 0, -3); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("negative hours: want ErrInvalidDuration, got %v", err)
	}
	if _, _, err := ComputeReminder(now, "Mars/Olympus", 1, 0); !errors.Is(err, ErrInvalidTimezone) {
		t.Errorf("bad zone: want ErrInvalidTimezone, got %v", err)
	}
}

func TestParseRemaining(t *testing.T) {
	days, hours, err := ParseRemaining(" 5 ", "12")
	if err != nil {
		t.Fatalf("ParseRemaining: %v", err)
	}
	if days != 5 || hours != 12 {
		t.Errorf("want 5/12, got %d/%d", days, hours)
	}

	for _, bad := range [][2]string{{"five", "1"}, {"1", ""}, {"-2", "0"}, {"0", "-1"}} {
		if _, _, err := ParseRemaining(bad[0], bad[1]); !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("ParseRemaining(%q, %q): want ErrInvalidDuration, got %v", bad[0], bad[1], err)
		}
	}
}

func TestValidateTZ(t *testing.T) {
	if _, err := ValidateTZ("Asia/Kolkata"); err != nil {
		t.Errorf("valid zone rejected: %v", err)
	}
	if _, err := ValidateTZ("Not/AZone"); !errors.Is(err, ErrInvalidTimezone) {
		t.Errorf("want ErrInvalidTimezone, got %v", err)
	}
}
