package types

import uuid "github.com/gofrs/uuid"

// HTTP Header Constants
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderRequestID     = "X-Request-Id"
	HeaderUID           = "uid"
)

// Authentication Constants
const (
	BearerPrefix = "Bearer "
)

// UserCtxName is the fiber locals key holding the authenticated UserContext.
const UserCtxName = "user"

// UserContext carries the authenticated principal extracted from a bearer token.
type UserContext struct {
	UserID uuid.UUID
	Email  string
	Name   string
}
