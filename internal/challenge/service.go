package challenge

import (
	"context"
	"time"

	"backend-passiverdi/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, input Challenge) (Challenge, error) {
	input.ID = uuid.NewString()
	if input.Type == "" {
		input.Type = TypeWeekly
	}
	if input.StartDate.IsZero() {
		input.StartDate = time.Now()
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO challenges (id, player_id, title, description, type, target_value, current_value, start_date, end_date, reward)
		VALUES ($1,$2,$3,$4,$5,$6,0,$7,$8,$9)
		RETURNING created_at
	`, input.ID, input.PlayerID, input.Title, input.Description, string(input.Type), input.TargetValue, input.StartDate, input.EndDate, input.Reward)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Challenge{}, err
	}
	return input, nil
}

func (s *Service) List(ctx context.Context, playerID string) ([]Challenge, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, player_id, title, description, type, target_value, current_value, start_date, end_date, reward, is_completed, created_at
		FROM challenges WHERE player_id=$1
		ORDER BY created_at
	`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var challenges []Challenge
	for rows.Next() {
		var c Challenge
		var typ string
		if err := rows.Scan(&c.ID, &c.PlayerID, &c.Title, &c.Description, &typ, &c.TargetValue, &c.CurrentValue, &c.StartDate, &c.EndDate, &c.Reward, &c.IsCompleted, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Type = Type(typ)
		challenges = append(challenges, c)
	}
	return challenges, nil
}

// Advance bumps every open challenge of the player by one activity and
// completes those that reached their target. Returns the sum of reward
// points newly credited.
func (s *Service) Advance(ctx context.Context, playerID string, now time.Time) (int, error) {
	_, err := s.db.Exec(ctx, `
		UPDATE challenges
		SET current_value = current_value + 1
		WHERE player_id=$1 AND NOT is_completed AND end_date > $2
	`, playerID, now)
	if err != nil {
		return 0, err
	}

	rows, err := s.db.Query(ctx, `
		UPDATE challenges
		SET is_completed = TRUE
		WHERE player_id=$1 AND NOT is_completed AND current_value >= target_value
		RETURNING reward
	`, playerID)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	total := 0
	for rows.Next() {
		var reward int
		if err := rows.Scan(&reward); err != nil {
			return 0, err
		}
		total += reward
	}
	return total, nil
}
