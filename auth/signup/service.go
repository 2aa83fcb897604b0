package signup

import (
	"context"
	"fmt"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/marknest/api/auth/errors"
	"github.com/marknest/api/auth/models"
	"github.com/marknest/api/auth/repository"
	"github.com/marknest/api/internal/auth/tokens"
	platformconfig "github.com/marknest/api/internal/platform/config"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the work factor used for all stored password hashes.
const bcryptCost = 10

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

// Signup creates an account and issues a long-lived token so the client is
// signed in immediately after registering.
func (s *Service) Signup(ctx context.Context, model *Model) (*Response, error) {
	if existing, err := s.repo.FindByEmail(ctx, model.Email); err == nil && existing != nil {
		return nil, errors.ErrUserAlreadyExists
	} else if err != nil && err != errors.ErrUserNotFound {
		return nil, errors.WrapDatabaseError(fmt.Errorf("check existing user: %w", err))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(model.Password), bcryptCost)
	if err != nil {
		return nil, errors.WrapSystemError(fmt.Errorf("password hashing failed: %w", err))
	}

	user := &models.User{
		ObjectId:     uuid.Must(uuid.NewV4()),
		Name:         model.Name,
		Email:        model.Email,
		PhoneNumber:  model.PhoneNumber,
		Gender:       model.Gender,
		Password:     hashed,
		AuthProvider: models.ProviderLocal,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if err == errors.ErrUserAlreadyExists {
			return nil, err
		}
		return nil, errors.WrapDatabaseError(fmt.Errorf("create user: %w", err))
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, errors.WrapSystemError(fmt.Errorf("issue token: %w", err))
	}

	return &Response{
		Message: "User created successfully",
		User:    user.ToResponse(),
		Token:   token,
	}, nil
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
		models.ProviderLocal,
		profile,
		claim,
		s.config.JWTConfig.SignupTokenTTL,
		s.config.JWTConfig.PrivateKey,
	)
}
