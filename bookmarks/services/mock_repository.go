package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/marknest/api/bookmarks/models"
	"github.com/marknest/api/bookmarks/repository"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a test double for the bookmark repository.
type MockRepository struct {
	mock.Mock
}

var _ repository.Repository = (*MockRepository)(nil)

func (m *MockRepository) Insert(ctx context.Context, bookmark *models.Bookmark) error {
	args := m.Called(ctx, bookmark)
	return args.Error(0)
}

func (m *MockRepository) FindByOwnerAndURL(ctx context.Context, owner models.OwnerID, url string) (*models.Bookmark, error) {
	args := m.Called(ctx, owner, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bookmark), args.Error(1)
}

func (m *MockRepository) MaxOrder(ctx context.Context, owner models.OwnerID) (int, error) {
	args := m.Called(ctx, owner)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) FindRecent(ctx context.Context, owner models.OwnerID) ([]models.Bookmark, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bookmark), args.Error(1)
}

func (m *MockRepository) FindOrdered(ctx context.Context, owner models.OwnerID) ([]models.Bookmark, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bookmark), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Bookmark, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bookmark), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) UpdateOrders(ctx context.Context, updates []repository.OrderUpdate) error {
	args := m.Called(ctx, updates)
	return args.Error(0)
}

// Transact runs fn directly; mocked repositories have no real transaction.
func (m *MockRepository) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
