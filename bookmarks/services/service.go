package services

import (
	"context"
	"errors"
	"time"

	uuid "github.com/gofrs/uuid"
	bookmarkerrors "github.com/marknest/api/bookmarks/errors"
	"github.com/marknest/api/bookmarks/models"
	"github.com/marknest/api/bookmarks/repository"
	"github.com/marknest/api/internal/locks"
	"github.com/marknest/api/internal/pkg/log"
	"github.com/marknest/api/resolver"
)

// Service exposes bookmark operations keyed by owner.
type Service interface {
	CreateBookmark(ctx context.Context, owner models.OwnerID, url, tagline string) (*models.Bookmark, error)
	ListRecent(ctx context.Context, owner models.OwnerID) ([]models.Bookmark, error)
	ListOrdered(ctx context.Context, owner models.OwnerID) ([]models.Bookmark, error)
	DeleteBookmark(ctx context.Context, owner models.OwnerID, id uuid.UUID) error
	Reorder(ctx context.Context, owner models.OwnerID, id uuid.UUID, newPosition int) error
}

type bookmarkService struct {
	repo       repository.Repository
	resolver   resolver.Resolver
	ownerLocks *locks.KeyedMutex
}

// NewService creates the bookmark service. Mutating operations for one owner
// are serialized through a keyed mutex so order assignment and renumbering
// never interleave.
func NewService(repo repository.Repository, res resolver.Resolver) Service {
	return &bookmarkService{
		repo:       repo,
		resolver:   res,
		ownerLocks: locks.NewKeyedMutex(),
	}
}

// CreateBookmark saves a URL for an owner, appending it at the end of the
// display order. Resolver failures degrade metadata to placeholders and never
// fail the request.
func (s *bookmarkService) CreateBookmark(ctx context.Context, owner models.OwnerID, url, tagline string) (*models.Bookmark, error) {
	if owner == "" {
		return nil, bookmarkerrors.NewValidationError("owner", "owner is required")
	}
	if url == "" {
		return nil, bookmarkerrors.NewValidationError("url", "url is required")
	}

	// Pre-insert dedup check so duplicates skip the metadata fetch. A
	// concurrent create for the same pair can still slip past this check and
	// is caught by the storage uniqueness constraint below.
	if _, err := s.repo.FindByOwnerAndURL(ctx, owner, url); err == nil {
		return nil, bookmarkerrors.ErrDuplicateBookmark
	} else if !errors.Is(err, bookmarkerrors.ErrBookmarkNotFound) {
		return nil, bookmarkerrors.WrapDatabaseError(err)
	}

	// Resolve outside the owner lock: the fetch can take up to the resolver
	// timeout and must not block the owner's other mutations.
	meta, resolveErr := s.resolver.Resolve(ctx, url)
	if resolveErr != nil {
		log.WarnWithContext(ctx, "metadata resolution degraded for %s: %v", url, resolveErr)
	}

	if tagline == "" {
		tagline = models.DefaultTagline
	}

	s.ownerLocks.Lock(owner.String())
	defer s.ownerLocks.Unlock(owner.String())

	maxOrder, err := s.repo.MaxOrder(ctx, owner)
	if err != nil {
		return nil, bookmarkerrors.WrapDatabaseError(err)
	}

	bookmark := &models.Bookmark{
		ObjectId:  uuid.Must(uuid.NewV4()),
		Owner:     owner,
		URL:       url,
		Tagline:   tagline,
		Title:     meta.Title,
		Favicon:   meta.Favicon,
		Summary:   meta.Summary,
		Order:     maxOrder + 1,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, bookmark); err != nil {
		if errors.Is(err, bookmarkerrors.ErrDuplicateBookmark) {
			return nil, err
		}
		return nil, bookmarkerrors.WrapDatabaseError(err)
	}

	return bookmark, nil
}

func (s *bookmarkService) ListRecent(ctx context.Context, owner models.OwnerID) ([]models.Bookmark, error) {
	if owner == "" {
		return nil, bookmarkerrors.NewValidationError("owner", "owner is required")
	}

	bookmarks, err := s.repo.FindRecent(ctx, owner)
	if err != nil {
		return nil, bookmarkerrors.WrapDatabaseError(err)
	}
	return bookmarks, nil
}

func (s *bookmarkService) ListOrdered(ctx context.Context, owner models.OwnerID) ([]models.Bookmark, error) {
	if owner == "" {
		return nil, bookmarkerrors.NewValidationError("owner", "owner is required")
	}

	bookmarks, err := s.repo.FindOrdered(ctx, owner)
	if err != nil {
		return nil, bookmarkerrors.WrapDatabaseError(err)
	}
	return bookmarks, nil
}

// DeleteBookmark removes a bookmark the owner holds. A record belonging to a
// different owner reports not-found so existence never leaks. The remaining
// bookmarks are renumbered in the same transaction to keep orders dense.
func (s *bookmarkService) DeleteBookmark(ctx context.Context, owner models.OwnerID, id uuid.UUID) error {
	if owner == "" {
		return bookmarkerrors.NewValidationError("owner", "owner is required")
	}

	s.ownerLocks.Lock(owner.String())
	defer s.ownerLocks.Unlock(owner.String())

	return s.repo.Transact(ctx, func(ctx context.Context) error {
		bookmark, err := s.repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, bookmarkerrors.ErrBookmarkNotFound) {
				return bookmarkerrors.ErrBookmarkNotFound
			}
			return bookmarkerrors.WrapDatabaseError(err)
		}
		if bookmark.Owner != owner {
			return bookmarkerrors.ErrBookmarkNotFound
		}

		if err := s.repo.Delete(ctx, id); err != nil {
			return bookmarkerrors.WrapDatabaseError(err)
		}

		remaining, err := s.repo.FindOrdered(ctx, owner)
		if err != nil {
			return bookmarkerrors.WrapDatabaseError(err)
		}

		if err := s.repo.UpdateOrders(ctx, renumber(remaining)); err != nil {
			return bookmarkerrors.WrapDatabaseError(err)
		}
		return nil
	})
}

// Reorder moves one bookmark to a 1-based target rank and renumbers the
// owner's whole list. Positions past the end clamp to the last rank. The body
// runs under the owner lock and a transaction so the dense 1..N order survives
// concurrent mutation.
func (s *bookmarkService) Reorder(ctx context.Context, owner models.OwnerID, id uuid.UUID, newPosition int) error {
	if owner == "" {
		return bookmarkerrors.NewValidationError("owner", "owner is required")
	}
	if id == uuid.Nil {
		return bookmarkerrors.NewValidationError("bookmarkId", "bookmarkId is required")
	}
	if newPosition == 0 {
		return bookmarkerrors.NewValidationError("newOrder", "newOrder is required")
	}

	s.ownerLocks.Lock(owner.String())
	defer s.ownerLocks.Unlock(owner.String())

	return s.repo.Transact(ctx, func(ctx context.Context) error {
		ordered, err := s.repo.FindOrdered(ctx, owner)
		if err != nil {
			return bookmarkerrors.WrapDatabaseError(err)
		}
		if len(ordered) == 0 {
			return bookmarkerrors.ErrBookmarkNotFound
		}

		targetIndex := -1
		for i := range ordered {
			if ordered[i].ObjectId == id {
				targetIndex = i
				break
			}
		}
		if targetIndex == -1 {
			return bookmarkerrors.ErrBookmarkNotFound
		}

		target := ordered[targetIndex]
		remaining := append(ordered[:targetIndex:targetIndex], ordered[targetIndex+1:]...)

		insertIndex := newPosition - 1
		if insertIndex < 0 {
			insertIndex = 0
		}
		if insertIndex > len(remaining) {
			insertIndex = len(remaining)
		}

		reordered := make([]models.Bookmark, 0, len(ordered))
		reordered = append(reordered, remaining[:insertIndex]...)
		reordered = append(reordered, target)
		reordered = append(reordered, remaining[insertIndex:]...)

		if err := s.repo.UpdateOrders(ctx, renumber(reordered)); err != nil {
			return bookmarkerrors.WrapDatabaseError(err)
		}
		return nil
	})
}

// renumber assigns dense 1..N orders following slice position.
func renumber(bookmarks []models.Bookmark) []repository.OrderUpdate {
	updates := make([]repository.OrderUpdate, 0, len(bookmarks))
	for i := range bookmarks {
		updates = append(updates, repository.OrderUpdate{ID: bookmarks[i].ObjectId, Order: i + 1})
	}
	return updates
}
