package tracking

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/sessions", func(c *fiber.Ctx) error {
		var req struct {
			PlayerID string `json:"player_id"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.PlayerID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "player_id required")
		}
		return c.Status(fiber.StatusCreated).JSON(svc.StartSession(req.PlayerID, time.Now()))
	})

	r.Post("/sessions/:id/positions", func(c *fiber.Ctx) error {
		var req PositionSample
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Timestamp.IsZero() {
			req.Timestamp = time.Now()
		}
		if err := svc.Position(c.Params("id"), req); err != nil {
			return notFoundOr500(err)
		}
		return c.SendStatus(fiber.StatusAccepted)
	})

	r.Post("/sessions/:id/motions", func(c *fiber.Ctx) error {
		var req MotionHint
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Timestamp.IsZero() {
			req.Timestamp = time.Now()
		}
		if err := svc.Motion(c.Params("id"), req); err != nil {
			return notFoundOr500(err)
		}
		return c.SendStatus(fiber.StatusAccepted)
	})

	r.Get("/sessions/:id", func(c *fiber.Ctx) error {
		summary, err := svc.Summary(c.Params("id"))
		if err != nil {
			return notFoundOr500(err)
		}
		return c.JSON(summary)
	})

	r.Post("/sessions/:id/stop", func(c *fiber.Ctx) error {
		result, err := svc.StopSession(c.Context(), c.Params("id"), time.Now())
		if err != nil {
			return notFoundOr500(err)
		}
		if result == nil {
			// empty session, nothing meaningful happened
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.JSON(result)
	})
}

func notFoundOr500(err error) error {
	if errors.Is(err, ErrSessionNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
