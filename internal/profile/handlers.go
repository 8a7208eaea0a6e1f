package profile

import (
	"errors"

	"backend-wandermap/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		p, err := svc.Get(c.Context(), userID)
		if errors.Is(err, apperr.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "profile not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(p)
	})

	r.Put("/", authMiddleware, func(c *fiber.Ctx) error {
		var req UpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		userID, _ := c.Locals("user_id").(string)
		p, err := svc.Update(c.Context(), userID, req)
		if errors.Is(err, apperr.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "profile not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(p)
	})
}
