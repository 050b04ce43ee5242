package challenge

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/", func(c *fiber.Ctx) error {
		var req Challenge
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.PlayerID == "" || req.Title == "" || req.TargetValue <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "player_id, title and target_value required")
		}
		created, err := svc.Create(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Get("/:playerID", func(c *fiber.Ctx) error {
		challenges, err := svc.List(c.Context(), c.Params("playerID"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(challenges)
	})
}
