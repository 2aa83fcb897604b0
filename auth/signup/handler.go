package signup

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/marknest/api/auth/errors"
	"github.com/marknest/api/auth/validation"
	gopass "github.com/nbutton23/zxcvbn-go"
)

type Handler struct {
	svc *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{svc: s}
}

// Handle processes POST /auth/signup.
func (h *Handler) Handle(c *fiber.Ctx) error {
	var model Model
	if err := c.BodyParser(&model); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	if model.Name == "" {
		return errors.HandleMissingFieldError(c, "name")
	}
	if model.Email == "" {
		return errors.HandleMissingFieldError(c, "email")
	}
	if model.Password == "" {
		return errors.HandleMissingFieldError(c, "password")
	}
	if model.PhoneNumber == "" {
		return errors.HandleMissingFieldError(c, "phonenumber")
	}
	if model.Gender == "" {
		return errors.HandleMissingFieldError(c, "gender")
	}
	if err := validation.ValidateEmail(model.Email); err != nil {
		return errors.HandleInvalidFieldError(c, "email", err.Error())
	}
	if err := validation.ValidatePassword(model.Password); err != nil {
		return errors.HandleValidationError(c, err.Error())
	}

	passStrength := gopass.PasswordStrength(model.Password, []string{model.Name, model.Email})
	if passStrength.Score < 1 {
		return errors.HandleValidationError(c, "Password is not strong enough!")
	}

	response, err := h.svc.Signup(c.Context(), &model)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(response)
}
