// internal/program/gate.go
package program

import (
	"ozish-bot/internal/models"
)

// Outcome is the Day Gate's decision for a (user, day) pair.
type Outcome int

const (
	// Locked: the day is beyond the user's frontier.
	Locked Outcome = iota
	// PaywallRequired: the day is reachable but its stage is unpaid.
	PaywallRequired
	// Unlocked: the day may be shown.
	Unlocked
)

func (o Outcome) String() string {
	switch o {
	case Locked:
		return "locked"
	case PaywallRequired:
		return "paywall"
	case Unlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// GateResult carries the outcome plus, for paywalls, the unpaid stage and
// its price.
type GateResult struct {
	Outcome Outcome
	Stage   int
	Price   int
}

// Gate decides whether a day is shown, paywalled or still locked.
// Check is pure: it never mutates the user record.
type Gate struct {
	schedule PricingSchedule
}

func NewGate(schedule PricingSchedule) *Gate {
	return &Gate{schedule: schedule}
}

// Check applies the gating rules for requestedDay (1-indexed):
// days past the frontier are Locked regardless of payment; reachable days
// inside an unpaid gated range require the range's stage; everything else
// is Unlocked.
func (g *Gate) Check(u *models.UserRecord, requestedDay int) GateResult {
	if requestedDay > u.CurrentDay {
		return GateResult{Outcome: Locked}
	}
	tier, gated := g.schedule.TierFor(u.Track(), requestedDay)
	if gated && !u.HasPaid(tier.Stage) {
		return GateResult{Outcome: PaywallRequired, Stage: tier.Stage, Price: tier.Price}
	}
	return GateResult{Outcome: Unlocked}
}
