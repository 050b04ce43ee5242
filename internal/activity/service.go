package activity

import (
	"context"

	"backend-passiverdi/internal/db"
	"backend-passiverdi/internal/transport"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Save appends an activity to the player's history. Records are append-only.
func (s *Service) Save(ctx context.Context, a Activity) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO activities (id, player_id, mode, distance_km, start_time, end_time, points_earned, co2_saved_kg)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, a.ID, a.PlayerID, string(a.Mode), a.DistanceKm, a.StartTime, a.EndTime, a.PointsEarned, a.CO2SavedKg)
	return err
}

// History returns the player's activities ordered by start time.
func (s *Service) History(ctx context.Context, playerID string) ([]Activity, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, player_id, mode, distance_km, start_time, end_time, points_earned, co2_saved_kg
		FROM activities WHERE player_id=$1
		ORDER BY start_time
	`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var acts []Activity
	for rows.Next() {
		var a Activity
		var mode string
		if err := rows.Scan(&a.ID, &a.PlayerID, &mode, &a.DistanceKm, &a.StartTime, &a.EndTime, &a.PointsEarned, &a.CO2SavedKg); err != nil {
			return nil, err
		}
		a.Mode = transport.Mode(mode)
		acts = append(acts, a)
	}
	return acts, nil
}
