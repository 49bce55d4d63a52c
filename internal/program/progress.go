// internal/program/progress.go
package program

import (
	"errors"
	"fmt"

	"ozish-bot/internal/models"
	"ozish-bot/internal/store"
	"ozish-bot/pkg/logger"
)

// ContentProvider serves display text for one day of a track. The core
// never generates content.
type ContentProvider interface {
	DayText(track models.Track, day int) (string, bool)
}

// Notifier delivers out-of-band messages. Delivery is fire-and-forget:
// implementations log failures and never block the calling transaction.
type Notifier interface {
	NotifyUser(userID int64, text string)
	NotifyAdminPhoto(fileID, caption string)
}

// ViewKind classifies the result of a day-view request.
type ViewKind int

const (
	// ViewContent: the day was unlocked and Content is set.
	ViewContent ViewKind = iota
	// ViewLockedNotice: the day is past the frontier; a transient notice,
	// not an error.
	ViewLockedNotice
	// ViewPaywall: the day's stage is unpaid; Stage and Price are set.
	ViewPaywall
)

// ViewResult is the outcome of Controller.ViewDay.
type ViewResult struct {
	Kind    ViewKind
	Day     int
	Content string
	Stage   int
	Price   int
}

// Controller orchestrates a "view day" request end to end: it consults the
// Day Gate, renders content for unlocked days, and advances the frontier.
type Controller struct {
	store   *store.Store
	gate    *Gate
	content ContentProvider
	logger  *logger.Logger
}

func NewController(st *store.Store, gate *Gate, content ContentProvider, l *logger.Logger) *Controller {
	return &Controller{
		store:   st,
		gate:    gate,
		content: content,
		logger:  l,
	}
}

const dayNotFoundText = "❌ Ushbu kun uchun ma'lumot topilmadi"

// ViewDay handles a request for requestedDay by userID.
//
// Locked days produce a notice and no mutation. Paywalled days record the
// pending stage on the user and produce a payment prompt. Unlocked days
// produce content; viewing the frontier day advances CurrentDay by exactly
// one, and only the frontier view does — re-reading a past day never moves
// the pointer. The mutation is durable before the result is returned.
func (c *Controller) ViewDay(userID int64, requestedDay int) (*ViewResult, error) {
	var res *ViewResult

	_, err := c.store.UpdateUser(userID, func(u *models.UserRecord) error {
		gr := c.gate.Check(u, requestedDay)
		switch gr.Outcome {
		case Locked:
			res = &ViewResult{Kind: ViewLockedNotice, Day: requestedDay}
			return nil
		case PaywallRequired:
			// One pending stage per user; a later paywall encounter
			// overwrites the previous one.
			u.AwaitingStage = gr.Stage
			res = &ViewResult{Kind: ViewPaywall, Day: requestedDay, Stage: gr.Stage, Price: gr.Price}
			return nil
		}

		text, found := c.content.DayText(u.Track(), requestedDay)
		if !found {
			text = dayNotFoundText
		}
		res = &ViewResult{Kind: ViewContent, Day: requestedDay, Content: text}

		if requestedDay == u.CurrentDay && u.CurrentDay < u.TotalDays() {
			u.CurrentDay++
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to view day %d for user %d: %w", requestedDay, userID, err)
	}

	c.logger.Info("Day view handled",
		"user_id", userID, "day", requestedDay, "kind", int(res.Kind))
	return res, nil
}

// ViewFrontier shows the user's current frontier day. This is what both the
// "today" and "next day" menu buttons resolve to: the frontier is always
// the next unread day, because reading it advances the pointer.
func (c *Controller) ViewFrontier(userID int64) (*ViewResult, error) {
	u, ok := c.store.GetUser(userID)
	if !ok {
		return nil, ErrUserNotFound
	}
	return c.ViewDay(userID, u.CurrentDay)
}
