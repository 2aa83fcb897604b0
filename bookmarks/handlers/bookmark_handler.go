package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
	"github.com/marknest/api/bookmarks/errors"
	"github.com/marknest/api/bookmarks/models"
	"github.com/marknest/api/bookmarks/services"
	"github.com/marknest/api/bookmarks/validation"
	"github.com/marknest/api/internal/types"
)

type BookmarkHandler struct {
	service services.Service
}

func NewBookmarkHandler(service services.Service) *BookmarkHandler {
	return &BookmarkHandler{service: service}
}

// Create saves a new bookmark.
// Endpoint: POST /bookmarks
func (h *BookmarkHandler) Create(c *fiber.Ctx) error {
	var req models.CreateBookmarkRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	// A request without an owner identity is unauthorized, not malformed.
	owner, err := models.NewOwnerID(req.Email)
	if err != nil {
		return c.Status(http.StatusUnauthorized).JSON(errors.ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "email is required",
		})
	}

	if err := validation.ValidateURL(req.URL); err != nil {
		return errors.HandleValidationError(c, err.Error())
	}

	bookmark, err := h.service.CreateBookmark(c.Context(), owner, req.URL, req.Tagline)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(bookmark)
}

// ListRecent returns the owner's bookmarks newest first.
// Endpoint: GET /bookmarks?email=
func (h *BookmarkHandler) ListRecent(c *fiber.Ctx) error {
	owner, err := models.NewOwnerID(c.Query("email"))
	if err != nil {
		return errors.HandleMissingFieldError(c, "email")
	}

	bookmarks, err := h.service.ListRecent(c.Context(), owner)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(bookmarks)
}

// ListOrdered returns the owner's bookmarks by display order.
// Endpoint: GET /bookmarks/ordered?email=
func (h *BookmarkHandler) ListOrdered(c *fiber.Ctx) error {
	owner, err := models.NewOwnerID(c.Query("email"))
	if err != nil {
		return errors.HandleMissingFieldError(c, "email")
	}

	bookmarks, err := h.service.ListOrdered(c.Context(), owner)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(bookmarks)
}

// Delete removes one of the authenticated user's bookmarks.
// Endpoint: DELETE /bookmarks/:id
func (h *BookmarkHandler) Delete(c *fiber.Ctx) error {
	idParam := c.Params("id")
	id, err := uuid.FromString(idParam)
	if err != nil {
		return errors.HandleValidationError(c, "invalid bookmark id")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(errors.ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "invalid user context",
		})
	}

	owner, err := models.NewOwnerID(user.Email)
	if err != nil {
		return c.Status(http.StatusUnauthorized).JSON(errors.ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "invalid user context",
		})
	}

	if err := h.service.DeleteBookmark(c.Context(), owner, id); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"msg": "Bookmark deleted successfully"})
}

// Reorder moves a bookmark to a new rank in the owner's list.
// Endpoint: PUT /bookmarks/reorder
func (h *BookmarkHandler) Reorder(c *fiber.Ctx) error {
	var req models.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	owner, err := models.NewOwnerID(req.Email)
	if err != nil {
		return errors.HandleMissingFieldError(c, "email")
	}
	if req.BookmarkID == "" {
		return errors.HandleMissingFieldError(c, "bookmarkId")
	}
	if req.NewOrder == 0 {
		return errors.HandleMissingFieldError(c, "newOrder")
	}

	id, err := uuid.FromString(req.BookmarkID)
	if err != nil {
		return errors.HandleValidationError(c, "invalid bookmark id")
	}

	if err := h.service.Reorder(c.Context(), owner, id, req.NewOrder); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Bookmark order updated successfully"})
}
