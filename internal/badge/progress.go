package badge

import "backend-passiverdi/internal/transport"

// Snapshot is the view of a player's cumulative state the progress model
// reads. It is rebuilt from the authoritative activity history on every fold
// rather than kept as incremental counters.
type Snapshot struct {
	TotalPoints     int
	StreakDays      int
	ActivityCount   int
	TotalDistanceKm float64
	TotalCO2SavedKg float64
	DistanceByMode  map[transport.Mode]float64
}

// Progress returns the unlock progress of def in [0,1].
func Progress(def Definition, s Snapshot) float64 {
	var p float64
	switch def.Category {
	case CategoryDistance:
		p = s.TotalDistanceKm / def.Requirement
	case CategoryPoints:
		p = float64(s.TotalPoints) / def.Requirement
	case CategoryActivityCount:
		p = s.DistanceByMode[def.ModeFilter] / def.Requirement
	case CategoryStreak:
		p = float64(s.StreakDays) / def.Requirement
	case CategorySpecial:
		p = specialProgress(def, s)
	}
	return clamp(p)
}

func specialProgress(def Definition, s Snapshot) float64 {
	switch def.ID {
	case "first_step":
		// welcome badge: unlocked on the first evaluation with history
		if s.ActivityCount >= 1 {
			return 1
		}
		return 0
	case "co2_saver":
		return s.TotalCO2SavedKg / def.Requirement
	}
	return 0
}

func clamp(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
