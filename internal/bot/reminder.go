// internal/bot/reminder.go
package bot

import (
	"context"
	"time"

	"ozish-bot/internal/program"
	"ozish-bot/internal/store"
	"ozish-bot/pkg/logger"
)

const reminderText = "⏰ Bugungi kunni o‘qishni unutmang! 📅 Bugungi kun tugmasini bosing."

// Reminder nudges every user who hasn't finished their track once a day at
// a fixed local wall-clock time. It talks to the core only through the
// Notifier and reads users through the store API, and it stops as soon as
// its context is cancelled.
type Reminder struct {
	store    *store.Store
	notifier program.Notifier
	hour     int
	minute   int
	logger   *logger.Logger
}

func NewReminder(st *store.Store, notifier program.Notifier, hour, minute int, l *logger.Logger) *Reminder {
	return &Reminder{
		store:    st,
		notifier: notifier,
		hour:     hour,
		minute:   minute,
		logger:   l,
	}
}

// Run blocks until ctx is cancelled.
func (r *Reminder) Run(ctx context.Context) {
	for {
		wait := time.Until(r.nextWakeup(time.Now()))
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			r.logger.Info("Reminder loop stopped")
			return
		case <-timer.C:
			r.sendReminders()
		}
	}
}

func (r *Reminder) nextWakeup(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), r.hour, r.minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (r *Reminder) sendReminders() {
	sent := 0
	for _, u := range r.store.ListUsers() {
		if u.CurrentDay >= u.TotalDays() {
			continue
		}
		r.notifier.NotifyUser(u.ID, reminderText)
		sent++
	}
	r.logger.Info("Daily reminders sent", "count", sent)
}
