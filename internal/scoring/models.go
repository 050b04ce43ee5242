package scoring

import (
	"time"

	"backend-passiverdi/internal/activity"
	"backend-passiverdi/internal/badge"
	"backend-passiverdi/internal/transport"
)

// BadgeState tracks one badge for one player. Earned is monotonic: once true
// it never reverts.
type BadgeState struct {
	Earned     bool      `json:"earned"`
	EarnedDate time.Time `json:"earned_date,omitempty"`
	Progress   float64   `json:"progress"`
}

// PlayerState is the cumulative, single-writer aggregate of one player.
// It is mutated exclusively through Fold.
type PlayerState struct {
	PlayerID         string                `json:"player_id"`
	TotalPoints      int                   `json:"total_points"`
	Level            int                   `json:"level"`
	StreakDays       int                   `json:"streak_days"`
	LastActivityDate time.Time             `json:"last_activity_date,omitempty"`
	History          []activity.Activity   `json:"history,omitempty"`
	Badges           map[string]BadgeState `json:"badges"`
}

// NewPlayerState returns the zero state for a player.
func NewPlayerState(playerID string) PlayerState {
	return PlayerState{
		PlayerID: playerID,
		Level:    1,
		Badges:   map[string]BadgeState{},
	}
}

// Snapshot rebuilds the badge-progress view from the authoritative history.
func (s PlayerState) Snapshot() badge.Snapshot {
	snap := badge.Snapshot{
		TotalPoints:    s.TotalPoints,
		StreakDays:     s.StreakDays,
		ActivityCount:  len(s.History),
		DistanceByMode: map[transport.Mode]float64{},
	}
	for _, act := range s.History {
		snap.TotalDistanceKm += act.DistanceKm
		snap.TotalCO2SavedKg += act.CO2SavedKg
		snap.DistanceByMode[act.Mode] += act.DistanceKm
	}
	return snap
}

func (s PlayerState) clone() PlayerState {
	next := s
	next.History = append([]activity.Activity(nil), s.History...)
	next.Badges = make(map[string]BadgeState, len(s.Badges))
	for id, bs := range s.Badges {
		next.Badges[id] = bs
	}
	return next
}
