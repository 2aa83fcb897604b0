package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	uuid "github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	bookmarkerrors "github.com/marknest/api/bookmarks/errors"
	"github.com/marknest/api/bookmarks/models"
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

func (r *postgresRepository) Insert(ctx context.Context, bookmark *models.Bookmark) error {
	query := `
		INSERT INTO %sbookmarks (id, owner_email, url, tagline, title, favicon, summary, display_order, created_at)
		VALUES (:id, :owner_email, :url, :tagline, :title, :favicon, :summary, :display_order, :created_at)
	`

	sqlStr := r.prefixSchema(query)
	_, err := sqlx.NamedExecContext(ctx, r.getExecutor(ctx), sqlStr, bookmark)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return bookmarkerrors.ErrDuplicateBookmark
		}
		return fmt.Errorf("insert bookmark: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByOwnerAndURL(ctx context.Context, owner models.OwnerID, url string) (*models.Bookmark, error) {
	query := `
		SELECT id, owner_email, url, tagline, title, favicon, summary, display_order, created_at
		FROM %sbookmarks
		WHERE owner_email = $1 AND url = $2
	`

	var bookmark models.Bookmark
	sqlStr := r.prefixSchema(query)
	if err := sqlx.GetContext(ctx, r.getExecutor(ctx), &bookmark, sqlStr, owner, url); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bookmarkerrors.ErrBookmarkNotFound
		}
		return nil, fmt.Errorf("find bookmark by url: %w", err)
	}

	return &bookmark, nil
}

func (r *postgresRepository) MaxOrder(ctx context.Context, owner models.OwnerID) (int, error) {
	query := `
		SELECT COALESCE(MAX(display_order), 0)
		FROM %sbookmarks
		WHERE owner_email = $1
	`

	var highest int
	sqlStr := r.prefixSchema(query)
	if err := sqlx.GetContext(ctx, r.getExecutor(ctx), &highest, sqlStr, owner); err != nil {
		return 0, fmt.Errorf("max order: %w", err)
	}

	return highest, nil
}

func (r *postgresRepository) FindRecent(ctx context.Context, owner models.OwnerID) ([]models.Bookmark, error) {
	query := `
		SELECT id, owner_email, url, tagline, title, favicon, summary, display_order, created_at
		FROM %sbookmarks
		WHERE owner_email = $1
		ORDER BY created_at DESC
	`

	var bookmarks []models.Bookmark
	sqlStr := r.prefixSchema(query)
	if err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &bookmarks, sqlStr, owner); err != nil {
		return nil, fmt.Errorf("find recent bookmarks: %w", err)
	}

	return bookmarks, nil
}

func (r *postgresRepository) FindOrdered(ctx context.Context, owner models.OwnerID) ([]models.Bookmark, error) {
	query := `
		SELECT id, owner_email, url, tagline, title, favicon, summary, display_order, created_at
		FROM %sbookmarks
		WHERE owner_email = $1
		ORDER BY display_order ASC
	`

	var bookmarks []models.Bookmark
	sqlStr := r.prefixSchema(query)
	if err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &bookmarks, sqlStr, owner); err != nil {
		return nil, fmt.Errorf("find ordered bookmarks: %w", err)
	}

	return bookmarks, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Bookmark, error) {
	query := `
		SELECT id, owner_email, url, tagline, title, favicon, summary, display_order, created_at
		FROM %sbookmarks
		WHERE id = $1
	`

	var bookmark models.Bookmark
	sqlStr := r.prefixSchema(query)
	if err := sqlx.GetContext(ctx, r.getExecutor(ctx), &bookmark, sqlStr, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bookmarkerrors.ErrBookmarkNotFound
		}
		return nil, fmt.Errorf("find bookmark by id: %w", err)
	}

	return &bookmark, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM %sbookmarks
		WHERE id = $1
	`

	sqlStr := r.prefixSchema(query)
	result, err := r.getExecutor(ctx).ExecContext(ctx, sqlStr, id)
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return bookmarkerrors.ErrBookmarkNotFound
	}

	return nil
}

func (r *postgresRepository) UpdateOrders(ctx context.Context, updates []OrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	query := `
		UPDATE %sbookmarks
		SET display_order = $1
		WHERE id = $2
	`

	exec := r.getExecutor(ctx)
	sqlStr := r.prefixSchema(query)
	for _, update := range updates {
		if _, err := exec.ExecContext(ctx, sqlStr, update.Order, update.ID); err != nil {
			return fmt.Errorf("update order for %s: %w", update.ID, err)
		}
	}

	return nil
}

// Transact begins a transaction, binds it to the context under the executor
// key, and commits when fn succeeds.
func (r *postgresRepository) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := r.client.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txCtx := context.WithValue(ctx, "tx", tx)
	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("rollback after %v: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (r *postgresRepository) prefixSchema(query string) string {
	if r.schema == "" {
		return fmt.Sprintf(query, "")
	}
	return fmt.Sprintf(query, r.schema+".")
}
