// internal/models/user.go
package models

import (
	"time"
)

// Track is the program length bucket derived from the user's weight.
type Track string

const (
	TrackStandard Track = "standard" // 30 days
	TrackHeavy    Track = "heavy"    // 40 days
)

// Users at or above this weight get the longer program.
const heavyWeightThreshold = 100

// TrackFor returns the program track for a weight in kilograms.
func TrackFor(weight int) Track {
	if weight < heavyWeightThreshold {
		return TrackStandard
	}
	return TrackHeavy
}

// TotalDays returns the program length in days for a weight in kilograms.
func TotalDays(weight int) int {
	if weight < heavyWeightThreshold {
		return 30
	}
	return 40
}

// UserRecord holds one user's onboarding data and program progress.
// Records are created when onboarding completes and are never deleted.
type UserRecord struct {
	ID            int64     `json:"id"`
	ChatID        int64     `json:"chat_id"`
	Name          string    `json:"name"`
	Surname       string    `json:"surname"`
	Age           int       `json:"age"`
	Weight        int       `json:"weight"`
	CurrentDay    int       `json:"current_day"`
	PaidStages    []int     `json:"paid_stages"`
	AwaitingStage int       `json:"awaiting_stage,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (u *UserRecord) Track() Track {
	return TrackFor(u.Weight)
}

func (u *UserRecord) TotalDays() int {
	return TotalDays(u.Weight)
}

// HasPaid reports whether the given pricing stage has been redeemed.
func (u *UserRecord) HasPaid(stage int) bool {
	for _, s := range u.PaidStages {
		if s == stage {
			return true
		}
	}
	return false
}

// AddPaidStage records a redeemed stage. The set only grows.
func (u *UserRecord) AddPaidStage(stage int) {
	if u.HasPaid(stage) {
		return
	}
	u.PaidStages = append(u.PaidStages, stage)
}
