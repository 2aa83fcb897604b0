package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/marknest/api/bookmarks/models"
)

// OrderUpdate assigns a new display order to one bookmark.
type OrderUpdate struct {
	ID    uuid.UUID
	Order int
}

// Repository defines persistence for bookmarks.
type Repository interface {
	// Insert persists a new bookmark. A (owner, url) collision returns
	// errors.ErrDuplicateBookmark.
	Insert(ctx context.Context, bookmark *models.Bookmark) error

	// FindByOwnerAndURL returns the bookmark for an (owner, url) pair, or
	// errors.ErrBookmarkNotFound.
	FindByOwnerAndURL(ctx context.Context, owner models.OwnerID, url string) (*models.Bookmark, error)

	// MaxOrder returns the highest display order among the owner's bookmarks,
	// zero when the owner has none.
	MaxOrder(ctx context.Context, owner models.OwnerID) (int, error)

	// FindRecent returns the owner's bookmarks newest first.
	FindRecent(ctx context.Context, owner models.OwnerID) ([]models.Bookmark, error)

	// FindOrdered returns the owner's bookmarks by display order ascending.
	FindOrdered(ctx context.Context, owner models.OwnerID) ([]models.Bookmark, error)

	// FindByID returns a bookmark regardless of owner, or
	// errors.ErrBookmarkNotFound. Ownership checks belong to the caller.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Bookmark, error)

	// Delete removes a bookmark by id. Missing rows return
	// errors.ErrBookmarkNotFound.
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateOrders applies a batch of display order changes.
	UpdateOrders(ctx context.Context, updates []OrderUpdate) error

	// Transact runs fn with a transaction bound to the context, so every
	// repository call inside fn shares it. fn returning an error rolls the
	// transaction back.
	Transact(ctx context.Context, fn func(ctx context.Context) error) error
}
