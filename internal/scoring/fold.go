package scoring

import (
	"errors"
	"math"
	"time"

	"backend-passiverdi/internal/activity"
	"backend-passiverdi/internal/badge"
)

// Invariant violations. These indicate a defect in the fold sequence, not a
// runtime condition: the fold halts and nothing may be persisted.
var (
	ErrLevelDecreased = errors.New("scoring: level decreased")
	ErrNegativeStreak = errors.New("scoring: negative streak")
	ErrBadgeRevoked   = errors.New("scoring: earned badge revoked")
)

const streakBonusRate = 0.10

// Fold merges one activity into the player state and reports badges that
// newly crossed their unlock threshold. It is a pure function of
// (state, act, now): the input state is never mutated, and replaying the same
// history in order reproduces the same final state.
func Fold(state PlayerState, act activity.Activity, now time.Time) (PlayerState, []badge.Definition, error) {
	next := state.clone()

	// 1. streak update on calendar days
	switch {
	case state.LastActivityDate.IsZero():
		next.StreakDays = 1
	case calendarDays(state.LastActivityDate, now) == 0:
		// same day, streak unchanged
	case calendarDays(state.LastActivityDate, now) == 1:
		next.StreakDays++
	default:
		next.StreakDays = 1
	}
	next.LastActivityDate = now
	if next.StreakDays < 0 {
		return PlayerState{}, nil, ErrNegativeStreak
	}

	// 2. streak bonus: 10% per completed 7-day block, on base points only
	streakWeeks := next.StreakDays / 7
	bonus := int(math.Floor(float64(act.PointsEarned) * float64(streakWeeks) * streakBonusRate))

	// 3. point accrual, 4. level recompute
	next.TotalPoints += act.PointsEarned + bonus
	next.Level = next.TotalPoints/100 + 1
	if next.Level < state.Level {
		return PlayerState{}, nil, ErrLevelDecreased
	}

	// 5. history append
	next.History = append(next.History, act)

	// 6. badge re-evaluation from scratch against the catalog
	snap := next.Snapshot()
	var unlocked []badge.Definition
	for _, def := range Catalog() {
		prev, ok := next.Badges[def.ID]
		if ok && prev.Earned {
			continue
		}
		bs := BadgeState{Progress: badge.Progress(def, snap)}
		if bs.Progress >= 1 {
			bs.Earned = true
			bs.EarnedDate = now
			bs.Progress = 1
			unlocked = append(unlocked, def)
		}
		next.Badges[def.ID] = bs
	}
	for id, bs := range state.Badges {
		if bs.Earned && !next.Badges[id].Earned {
			return PlayerState{}, nil, ErrBadgeRevoked
		}
	}

	return next, unlocked, nil
}

// AddReward credits flat bonus points (challenge rewards) while preserving
// the level invariant.
func AddReward(state PlayerState, points int) (PlayerState, error) {
	if points <= 0 {
		return state, nil
	}
	next := state.clone()
	next.TotalPoints += points
	next.Level = next.TotalPoints/100 + 1
	if next.Level < state.Level {
		return PlayerState{}, ErrLevelDecreased
	}
	return next, nil
}

// Catalog is the badge catalog the fold evaluates. Variable so tests can
// narrow it.
var Catalog = badge.Catalog

// calendarDays returns the number of calendar-day boundaries between a and b
// in UTC.
func calendarDays(a, b time.Time) int {
	return int(startOfDay(b).Sub(startOfDay(a)).Hours() / 24)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
