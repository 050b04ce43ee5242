package player

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"backend-passiverdi/internal/activity"
	"backend-passiverdi/internal/badge"
	"backend-passiverdi/internal/challenge"
	"backend-passiverdi/internal/db"
	"backend-passiverdi/internal/scoring"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "leaderboard:points"

type Service struct {
	db         db.Querier
	redis      *redis.Client
	acts       *activity.Service
	challenges *challenge.Service
}

func NewService(q db.Querier, redisClient *redis.Client, acts *activity.Service, challenges *challenge.Service) *Service {
	return &Service{db: q, redis: redisClient, acts: acts, challenges: challenges}
}

// Load reconstructs the player state: the snapshot row plus the authoritative
// activity history. Unknown players start from the zero state.
func (s *Service) Load(ctx context.Context, playerID string) (scoring.PlayerState, error) {
	state := scoring.NewPlayerState(playerID)

	var lastActivity *time.Time
	var badgeStates []byte
	row := s.db.QueryRow(ctx, `
		SELECT total_points, level, streak_days, last_activity_date, badge_states
		FROM player_states WHERE player_id=$1
	`, playerID)
	err := row.Scan(&state.TotalPoints, &state.Level, &state.StreakDays, &lastActivity, &badgeStates)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// first activity for this player
	case err != nil:
		return scoring.PlayerState{}, err
	default:
		if lastActivity != nil {
			state.LastActivityDate = *lastActivity
		}
		if len(badgeStates) > 0 {
			if err := json.Unmarshal(badgeStates, &state.Badges); err != nil {
				return scoring.PlayerState{}, err
			}
		}
	}

	history, err := s.acts.History(ctx, playerID)
	if err != nil {
		return scoring.PlayerState{}, err
	}
	state.History = history
	return state, nil
}

// ApplyActivity folds one finalized activity into the player state and
// persists the result: the activity row, the state snapshot, the challenge
// progress and the leaderboard score. An invariant violation aborts before
// anything is written.
func (s *Service) ApplyActivity(ctx context.Context, act activity.Activity) (activity.FoldOutcome, error) {
	state, err := s.Load(ctx, act.PlayerID)
	if err != nil {
		return activity.FoldOutcome{}, err
	}

	// now = activity end time keeps replays deterministic
	folded, unlocked, err := scoring.Fold(state, act, act.EndTime)
	if err != nil {
		return activity.FoldOutcome{}, err
	}
	bonus := folded.TotalPoints - state.TotalPoints - act.PointsEarned

	if err := s.acts.Save(ctx, act); err != nil {
		return activity.FoldOutcome{}, err
	}

	if s.challenges != nil {
		reward, err := s.challenges.Advance(ctx, act.PlayerID, act.EndTime)
		if err != nil {
			return activity.FoldOutcome{}, err
		}
		if folded, err = scoring.AddReward(folded, reward); err != nil {
			return activity.FoldOutcome{}, err
		}
	}

	if err := s.save(ctx, folded); err != nil {
		return activity.FoldOutcome{}, err
	}
	s.updateLeaderboard(ctx, folded)

	outcome := activity.FoldOutcome{
		TotalPoints: folded.TotalPoints,
		Level:       folded.Level,
		StreakDays:  folded.StreakDays,
		BonusPoints: bonus,
	}
	for _, def := range unlocked {
		outcome.UnlockedBadges = append(outcome.UnlockedBadges, def.ID)
	}
	return outcome, nil
}

// Replay rebuilds the player state from the activity history alone. Fold
// determinism makes this the recovery path for a lost or corrupted snapshot.
func (s *Service) Replay(ctx context.Context, playerID string) (scoring.PlayerState, error) {
	history, err := s.acts.History(ctx, playerID)
	if err != nil {
		return scoring.PlayerState{}, err
	}

	state := scoring.NewPlayerState(playerID)
	for _, act := range history {
		next, _, err := scoring.Fold(state, act, act.EndTime)
		if err != nil {
			return scoring.PlayerState{}, err
		}
		state = next
	}
	return state, nil
}

func (s *Service) save(ctx context.Context, state scoring.PlayerState) error {
	badgeStates, err := json.Marshal(state.Badges)
	if err != nil {
		return err
	}
	var lastActivity *time.Time
	if !state.LastActivityDate.IsZero() {
		lastActivity = &state.LastActivityDate
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO player_states (player_id, total_points, level, streak_days, last_activity_date, badge_states)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (player_id) DO UPDATE
		SET total_points=EXCLUDED.total_points, level=EXCLUDED.level,
		    streak_days=EXCLUDED.streak_days, last_activity_date=EXCLUDED.last_activity_date,
		    badge_states=EXCLUDED.badge_states
	`, state.PlayerID, state.TotalPoints, state.Level, state.StreakDays, lastActivity, badgeStates)
	return err
}

func (s *Service) updateLeaderboard(ctx context.Context, state scoring.PlayerState) {
	if s.redis == nil {
		return
	}
	s.redis.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(state.TotalPoints),
		Member: state.PlayerID,
	})
}

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"player_id"`
	Points   int    `json:"points"`
}

// Leaderboard returns the top players by points, from redis when available,
// otherwise from the snapshot table.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	if s.redis != nil {
		zs, err := s.redis.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
		if err == nil {
			entries := make([]LeaderboardEntry, 0, len(zs))
			for i, z := range zs {
				id, _ := z.Member.(string)
				entries = append(entries, LeaderboardEntry{Rank: i + 1, PlayerID: id, Points: int(z.Score)})
			}
			return entries, nil
		}
		// fall through to SQL on redis failure
	}

	rows, err := s.db.Query(ctx, `
		SELECT player_id, total_points
		FROM player_states
		ORDER BY total_points DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.PlayerID, &e.Points); err != nil {
			return nil, err
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	return entries, nil
}

// BadgeView pairs a catalog definition with the player's progress on it.
type BadgeView struct {
	badge.Definition
	Earned     bool       `json:"earned"`
	EarnedDate *time.Time `json:"earned_date,omitempty"`
	Progress   float64    `json:"progress"`
}

// Badges returns the full catalog annotated with the player's states.
func (s *Service) Badges(ctx context.Context, playerID string) ([]BadgeView, error) {
	state, err := s.Load(ctx, playerID)
	if err != nil {
		return nil, err
	}

	views := make([]BadgeView, 0, len(badge.Catalog()))
	for _, def := range badge.Catalog() {
		view := BadgeView{Definition: def}
		if bs, ok := state.Badges[def.ID]; ok {
			view.Earned = bs.Earned
			view.Progress = bs.Progress
			if bs.Earned {
				earned := bs.EarnedDate
				view.EarnedDate = &earned
			}
		}
		views = append(views, view)
	}
	return views, nil
}
