package repository

import (
	"context"

	"github.com/marknest/api/auth/models"
)

// Repository defines persistence for user accounts.
type Repository interface {
	// CreateUser inserts a new account. Returns errors.ErrUserAlreadyExists
	// when the email is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// FindByEmail returns the account for an email, or errors.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindAll returns every account, newest first.
	FindAll(ctx context.Context) ([]models.User, error)
}
