package activity

import (
	"context"
	"time"

	"backend-passiverdi/internal/transport"

	"github.com/gofiber/fiber/v2"
)

// Folder merges a finalized activity into the owning player's cumulative
// state and persists both.
type Folder interface {
	ApplyActivity(ctx context.Context, act Activity) (FoldOutcome, error)
}

type manualEntry struct {
	PlayerID   string    `json:"player_id"`
	Mode       string    `json:"mode"`
	DistanceKm float64   `json:"distance_km"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}

func RegisterRoutes(r fiber.Router, svc *Service, folder Folder, coeffs transport.Coefficients) {
	// Manual entry for trips recorded without sensors. Takes the same
	// finalize-then-fold path as a tracked session.
	r.Post("/manual", func(c *fiber.Ctx) error {
		var req manualEntry
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		mode := transport.Mode(req.Mode)
		if req.PlayerID == "" || !mode.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "player_id and a valid mode required")
		}
		if req.DistanceKm <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "distance_km must be positive")
		}
		if req.EndTime.IsZero() {
			req.EndTime = time.Now()
		}
		if req.StartTime.IsZero() || req.StartTime.After(req.EndTime) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid time range")
		}

		act := New(req.PlayerID, mode, req.DistanceKm, req.StartTime, req.EndTime, coeffs)
		outcome, err := folder.ApplyActivity(c.Context(), act)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"activity": act,
			"outcome":  outcome,
		})
	})

	r.Get("/:playerID", func(c *fiber.Ctx) error {
		acts, err := svc.History(c.Context(), c.Params("playerID"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(acts)
	})
}
