package login

import (
	"github.com/gofiber/fiber/v2"
	"github.com/marknest/api/auth/errors"
	"github.com/marknest/api/auth/validation"
)

type Handler struct {
	svc *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{svc: s}
}

// Handle processes POST /auth/login.
func (h *Handler) Handle(c *fiber.Ctx) error {
	var model Model
	if err := c.BodyParser(&model); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	if model.Email == "" {
		return errors.HandleMissingFieldError(c, "email")
	}
	if model.Password == "" {
		return errors.HandleMissingFieldError(c, "password")
	}
	if err := validation.ValidateEmail(model.Email); err != nil {
		return errors.HandleInvalidFieldError(c, "email", err.Error())
	}

	response, err := h.svc.Login(c.Context(), &model)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.JSON(response)
}
