package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/jmhodges/clock"
	"go.uber.org/zap"

	"github.com/kristofferp8/paycut-reminder-bot/internal/store"
)

// reminderText is the DM sent when a reminder fires.
const reminderText = "🕐 Your 7-day item is expiring soon! Don't forget to renew it!"

// ErrUnreachable marks a permanent delivery failure: the recipient has DMs
// closed, blocked the bot, or left. The reminder is dropped, not retried.
var ErrUnreachable = errors.New("recipient unreachable")

// Notifier delivers a direct message to a user. A nil error means delivered;
// an error wrapping ErrUnreachable is permanent; any other error is treated
// as transient and the reminder is retried on the next tick.
type Notifier interface {
	Notify(userID, text string) error
}

// Persister flushes the complete reminder mapping to durable storage.
// store.FileStore implements this.
type Persister interface {
	Save(entries []store.Entry) error
}

// Sweeper periodically drains due reminders and dispatches notifications.
type Sweeper struct {
	store    *store.Store
	persist  Persister
	notifier Notifier
	log      *zap.Logger
	clk      clock.Clock
	interval time.Duration
}

// New creates a Sweeper ticking at the given interval.
func New(st *store.Store, persist Persister, notifier Notifier, log *zap.Logger, clk clock.Clock, interval time.Duration) *Sweeper {
	return &Sweeper{
		store:    st,
		persist:  persist,
		notifier: notifier,
		log:      log,
		clk:      clk,
		interval: interval,
	}
}

// Run starts the sweep loop until ctx is canceled. An in-flight tick always
// runs to completion; no new tick starts after cancellation.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("sweeper stopping")
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// tick performs one sweep: pop everything due, deliver, handle outcomes,
// persist. PopDue removes records in its own critical section, so a reminder
// reaches at most one tick; a transient delivery failure puts it back
// unchanged for the next one.
func (s *Sweeper) tick() {
	now := s.clk.Now().UTC()

	due := s.store.PopDue(now)
	if len(due) == 0 {
		return
	}

	for _, e := range due {
		err := s.notifier.Notify(e.UserID, reminderText)
		switch {
		case err == nil:
			s.log.Info("reminder delivered", zap.String("userID", e.UserID))
		case errors.Is(err, ErrUnreachable):
			s.log.Warn("recipient unreachable, dropping reminder",
				zap.String("userID", e.UserID), zap.Error(err))
		default:
			// Transient failure: reinstate with the original instant so the
			// next tick retries.
			s.store.Set(e.UserID, e.Reminder)
			s.log.Warn("delivery failed, will retry next tick",
				zap.String("userID", e.UserID), zap.Error(err))
		}
	}

	if err := s.persist.Save(s.store.Snapshot()); err != nil {
		s.log.Error("persist after sweep failed", zap.Error(err))
	}
}
