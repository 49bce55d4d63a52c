// internal/program/schedule.go
package program

import (
	"ozish-bot/internal/models"
)

// Tier is one gated day range of a track. The stage identifier equals the
// first day of the range.
type Tier struct {
	FirstDay int
	LastDay  int
	Stage    int
	Price    int
}

// PricingSchedule maps each track to its ordered, contiguous,
// non-overlapping gated ranges. Days outside every range are free.
type PricingSchedule map[models.Track][]Tier

// DefaultSchedule is the production pricing: days 1-3 are free on both
// tracks, then stages at days 4, 11, 21 and (heavy track only) 31.
func DefaultSchedule() PricingSchedule {
	return PricingSchedule{
		models.TrackStandard: {
			{FirstDay: 4, LastDay: 10, Stage: 4, Price: 12000},
			{FirstDay: 11, LastDay: 20, Stage: 11, Price: 29000},
			{FirstDay: 21, LastDay: 30, Stage: 21, Price: 39000},
		},
		models.TrackHeavy: {
			{FirstDay: 4, LastDay: 10, Stage: 4, Price: 12000},
			{FirstDay: 11, LastDay: 20, Stage: 11, Price: 29000},
			{FirstDay: 21, LastDay: 30, Stage: 21, Price: 39000},
			{FirstDay: 31, LastDay: 40, Stage: 31, Price: 49000},
		},
	}
}

// TierFor returns the gated range containing day on the given track,
// or ok=false if the day is free.
func (s PricingSchedule) TierFor(track models.Track, day int) (Tier, bool) {
	for _, t := range s[track] {
		if day >= t.FirstDay && day <= t.LastDay {
			return t, true
		}
	}
	return Tier{}, false
}

// StageTier returns the range whose stage identifier matches stage on the
// given track.
func (s PricingSchedule) StageTier(track models.Track, stage int) (Tier, bool) {
	for _, t := range s[track] {
		if t.Stage == stage {
			return t, true
		}
	}
	return Tier{}, false
}

// Stages lists the stage identifiers of a track in day order.
func (s PricingSchedule) Stages(track models.Track) []int {
	tiers := s[track]
	stages := make([]int, 0, len(tiers))
	for _, t := range tiers {
		stages = append(stages, t.Stage)
	}
	return stages
}
