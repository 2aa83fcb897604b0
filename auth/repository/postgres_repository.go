package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	autherrors "github.com/marknest/api/auth/errors"
	"github.com/marknest/api/auth/models"
	"github.com/marknest/api/internal/database/postgres"
)

// pq error code for unique constraint violations.
const uniqueViolation = "23505"

type postgresRepository struct {
	client *postgres.Client
	schema string
}

// NewPostgresRepository creates a repository using the default schema.
func NewPostgresRepository(client *postgres.Client) Repository {
	return &postgresRepository{client: client, schema: ""}
}

// NewPostgresRepositoryWithSchema creates a repository using a specific schema.
func NewPostgresRepositoryWithSchema(client *postgres.Client, schema string) Repository {
	return &postgresRepository{client: client, schema: schema}
}

func (r *postgresRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	if txVal := ctx.Value("tx"); txVal != nil {
		if tx, ok := txVal.(*sqlx.Tx); ok {
			return tx
		}
	}
	return r.client.DB()
}

func (r *postgresRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO %susers (id, name, email, phone_number, gender, password_hash, auth_provider, created_at)
		VALUES (:id, :name, :email, :phone_number, :gender, :password_hash, :auth_provider, :created_at)
	`

	sqlStr := r.prefixSchema(query)
	_, err := sqlx.NamedExecContext(ctx, r.getExecutor(ctx), sqlStr, user)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return autherrors.ErrUserAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, phone_number, gender, password_hash, auth_provider, created_at
		FROM %susers
		WHERE email = $1
	`

	var user models.User
	sqlStr := r.prefixSchema(query)
	if err := sqlx.GetContext(ctx, r.getExecutor(ctx), &user, sqlStr, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, autherrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	return &user, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, name, email, phone_number, gender, password_hash, auth_provider, created_at
		FROM %susers
		ORDER BY created_at DESC
	`

	var users []models.User
	sqlStr := r.prefixSchema(query)
	if err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &users, sqlStr); err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}

	return users, nil
}

func (r *postgresRepository) prefixSchema(query string) string {
	if r.schema == "" {
		return fmt.Sprintf(query, "")
	}
	return fmt.Sprintf(query, r.schema+".")
}
