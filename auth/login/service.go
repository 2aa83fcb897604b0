package login

import (
	"context"
	"fmt"

	"github.com/marknest/api/auth/errors"
	"github.com/marknest/api/auth/models"
	"github.com/marknest/api/auth/repository"
	"github.com/marknest/api/internal/auth/tokens"
	platformconfig "github.com/marknest/api/internal/platform/config"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo   repository.Repository
	config *ServiceConfig
}

type ServiceConfig struct {
	JWTConfig platformconfig.JWTConfig
}

func NewService(repo repository.Repository, config *ServiceConfig) *Service {
	return &Service{repo: repo, config: config}
}

// Login verifies credentials and returns a session token. Unknown email and
// wrong password surface as distinct errors; both map to 400 at the handler.
func (s *Service) Login(ctx context.Context, model *Model) (*Response, error) {
	user, err := s.repo.FindByEmail(ctx, model.Email)
	if err != nil {
		if err == errors.ErrUserNotFound {
			return nil, err
		}
		return nil, errors.WrapDatabaseError(fmt.Errorf("find user: %w", err))
	}

	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(model.Password)); err != nil {
		return nil, errors.ErrWrongPassword
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, errors.WrapSystemError(fmt.Errorf("issue token: %w", err))
	}

	return &Response{Token: token}, nil
}

func (s *Service) issueToken(user *models.User) (string, error) {
	profile := map[string]string{
		"id":    user.ObjectId.String(),
		"email": user.Email,
		"name":  user.Name,
	}
	claim := map[string]interface{}{
		"uid":   user.ObjectId.String(),
		"email": user.Email,
		"name":  user.Name,
		"role":  "user",
	}
	return tokens.CreateTokenWithKey(
		user.AuthProvider,
		profile,
		claim,
		s.config.JWTConfig.LoginTokenTTL,
		s.config.JWTConfig.PrivateKey,
	)
}
