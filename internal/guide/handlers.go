package guide

import (
	"errors"

	"backend-wandermap/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		ownerID, _ := c.Locals("user_id").(string)
		guides, err := svc.ListByOwner(c.Context(), ownerID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if guides == nil {
			guides = []Guide{}
		}
		return c.JSON(guides)
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Draft
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Title == "" || req.Location == "" || req.Content == "" {
			return fiber.NewError(fiber.StatusBadRequest, "title, location and content required")
		}
		ownerID, _ := c.Locals("user_id").(string)
		created, err := svc.Create(c.Context(), ownerID, req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req Draft
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		ownerID, _ := c.Locals("user_id").(string)
		updated, err := svc.Update(c.Context(), ownerID, c.Params("id"), req)
		if errors.Is(err, apperr.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "guide not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(updated)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		ownerID, _ := c.Locals("user_id").(string)
		if err := svc.Delete(c.Context(), ownerID, c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
