package challenge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

var errQuery = errors.New("query error")

func TestCreateAndList(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	createdAt := time.Now()
	end := createdAt.AddDate(0, 0, 7)

	mock.ExpectQuery(`INSERT INTO challenges`).
		WithArgs(pgxmock.AnyArg(), "player-1", "Bike to work", "Ride 3 times this week", "weekly", 3, pgxmock.AnyArg(), end, 100).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	svc := NewService(mock)
	created, err := svc.Create(context.Background(), Challenge{
		PlayerID:    "player-1",
		Title:       "Bike to work",
		Description: "Ride 3 times this week",
		TargetValue: 3,
		EndDate:     end,
		Reward:      100,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Type != TypeWeekly {
		t.Fatalf("expected default weekly type")
	}

	mock.ExpectQuery(`SELECT id, player_id, title, description, type`).
		WithArgs("player-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "player_id", "title", "description", "type", "target_value", "current_value", "start_date", "end_date", "reward", "is_completed", "created_at"}).
			AddRow(created.ID, "player-1", "Bike to work", "Ride 3 times this week", "weekly", 3, 1, createdAt, end, 100, false, createdAt))

	challenges, err := svc.List(context.Background(), "player-1")
	if err != nil || len(challenges) != 1 {
		t.Fatalf("list: %v", err)
	}
	if challenges[0].Progress() < 0.33 || challenges[0].Progress() > 0.34 {
		t.Fatalf("unexpected progress %v", challenges[0].Progress())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdvanceCreditsRewards(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	mock.ExpectExec(`UPDATE challenges`).
		WithArgs("player-1", now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))
	mock.ExpectQuery(`UPDATE challenges`).
		WithArgs("player-1").
		WillReturnRows(pgxmock.NewRows([]string{"reward"}).AddRow(100).AddRow(50))

	svc := NewService(mock)
	reward, err := svc.Advance(context.Background(), "player-1", now)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if reward != 150 {
		t.Fatalf("expected 150 reward, got %d", reward)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdvanceNoCompletions(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	mock.ExpectExec(`UPDATE challenges`).
		WithArgs("player-1", now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(`UPDATE challenges`).
		WithArgs("player-1").
		WillReturnRows(pgxmock.NewRows([]string{"reward"}))

	svc := NewService(mock)
	reward, err := svc.Advance(context.Background(), "player-1", now)
	if err != nil || reward != 0 {
		t.Fatalf("expected no reward, got %d (%v)", reward, err)
	}
}

func TestAdvanceError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	mock.ExpectExec(`UPDATE challenges`).
		WithArgs("player-err", now).
		WillReturnError(errQuery)

	svc := NewService(mock)
	if _, err := svc.Advance(context.Background(), "player-err", now); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCreateError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO challenges`).
		WithArgs(pgxmock.AnyArg(), "player-1", "X", "", "weekly", 1, pgxmock.AnyArg(), pgxmock.AnyArg(), 0).
		WillReturnError(errQuery)

	svc := NewService(mock)
	if _, err := svc.Create(context.Background(), Challenge{PlayerID: "player-1", Title: "X", TargetValue: 1}); err == nil {
		t.Fatalf("expected error")
	}
}
