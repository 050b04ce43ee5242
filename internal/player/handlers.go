package player

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/:playerID", func(c *fiber.Ctx) error {
		state, err := svc.Load(c.Context(), c.Params("playerID"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{
			"player_id":          state.PlayerID,
			"total_points":       state.TotalPoints,
			"level":              state.Level,
			"streak_days":        state.StreakDays,
			"last_activity_date": state.LastActivityDate,
			"activity_count":     len(state.History),
		})
	})

	r.Get("/:playerID/activities", func(c *fiber.Ctx) error {
		acts, err := svc.acts.History(c.Context(), c.Params("playerID"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(acts)
	})

	r.Get("/:playerID/badges", func(c *fiber.Ctx) error {
		badges, err := svc.Badges(c.Context(), c.Params("playerID"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(badges)
	})

	r.Post("/:playerID/replay", func(c *fiber.Ctx) error {
		state, err := svc.Replay(c.Context(), c.Params("playerID"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(state)
	})
}

func RegisterLeaderboard(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "10"))
		entries, err := svc.Leaderboard(c.Context(), limit)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(entries)
	})
}
