package users

import (
	"context"
	"fmt"

	"github.com/marknest/api/auth/errors"
	"github.com/marknest/api/auth/models"
	"github.com/marknest/api/auth/repository"
)

type Service struct {
	repo repository.Repository
}

func NewService(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// List returns all registered accounts, newest first, without credentials.
func (s *Service) List(ctx context.Context) ([]models.UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, errors.WrapDatabaseError(fmt.Errorf("list users: %w", err))
	}

	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}

	return responses, nil
}
