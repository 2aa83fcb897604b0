package users

import (
	"github.com/gofiber/fiber/v2"
	"github.com/marknest/api/auth/errors"
)

type Handler struct {
	svc *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{svc: s}
}

// Handle processes GET /auth/users.
func (h *Handler) Handle(c *fiber.Ctx) error {
	users, err := h.svc.List(c.Context())
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.JSON(users)
}
