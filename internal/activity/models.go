package activity

import (
	"time"

	"backend-passiverdi/internal/transport"

	"github.com/google/uuid"
)

// Activity is the immutable record of one finished movement session.
type Activity struct {
	ID           string         `json:"id"`
	PlayerID     string         `json:"player_id"`
	Mode         transport.Mode `json:"mode"`
	DistanceKm   float64        `json:"distance_km"`
	StartTime    time.Time      `json:"start_time"`
	EndTime      time.Time      `json:"end_time"`
	PointsEarned int            `json:"points_earned"`
	CO2SavedKg   float64        `json:"co2_saved_kg"`
}

// New builds an Activity, deriving points and CO2 savings from the
// coefficient table.
func New(playerID string, mode transport.Mode, distanceKm float64, start, end time.Time, coeffs transport.Coefficients) Activity {
	return Activity{
		ID:           uuid.NewString(),
		PlayerID:     playerID,
		Mode:         mode,
		DistanceKm:   distanceKm,
		StartTime:    start,
		EndTime:      end,
		PointsEarned: coeffs.Points(mode, distanceKm),
		CO2SavedKg:   coeffs.CO2SavedKg(mode, distanceKm),
	}
}

// Duration of the recorded session.
func (a Activity) Duration() time.Duration {
	return a.EndTime.Sub(a.StartTime)
}

// FoldOutcome summarizes the player state after an activity was folded in.
type FoldOutcome struct {
	TotalPoints    int      `json:"total_points"`
	Level          int      `json:"level"`
	StreakDays     int      `json:"streak_days"`
	BonusPoints    int      `json:"bonus_points"`
	UnlockedBadges []string `json:"unlocked_badges,omitempty"`
}
