package models

import (
	"fmt"
	"strings"
	"time"

	uuid "github.com/gofrs/uuid"
)

// DefaultTagline is stored when the caller does not provide one.
const DefaultTagline = "No tagline provided"

// OwnerID identifies the principal who owns a set of bookmarks. The service
// keys ownership by email; the dedicated type keeps owner identity from being
// mixed up with other strings in queries.
type OwnerID string

// NewOwnerID validates and wraps an owner email.
func NewOwnerID(email string) (OwnerID, error) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return "", fmt.Errorf("owner email is required")
	}
	return OwnerID(trimmed), nil
}

func (o OwnerID) String() string { return string(o) }

// Bookmark is a stored URL plus resolved metadata and a per-owner display
// order. Orders for one owner are kept dense 1..N.
type Bookmark struct {
	ObjectId  uuid.UUID `json:"id" db:"id"`
	Owner     OwnerID   `json:"email" db:"owner_email"`
	URL       string    `json:"url" db:"url"`
	Tagline   string    `json:"tagline" db:"tagline"`
	Title     string    `json:"title" db:"title"`
	Favicon   string    `json:"favicon" db:"favicon"`
	Summary   string    `json:"summary" db:"summary"`
	Order     int       `json:"order" db:"display_order"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CreateBookmarkRequest is the POST /bookmarks payload.
type CreateBookmarkRequest struct {
	Email   string `json:"email"`
	URL     string `json:"url"`
	Tagline string `json:"tagline"`
}

// ReorderRequest is the PUT /bookmarks/reorder payload. NewOrder is a 1-based
// target rank; zero is rejected as missing input.
type ReorderRequest struct {
	Email      string `json:"email"`
	BookmarkID string `json:"bookmarkId"`
	NewOrder   int    `json:"newOrder"`
}
