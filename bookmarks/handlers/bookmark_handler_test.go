package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
	bookmarkerrors "github.com/marknest/api/bookmarks/errors"
	"github.com/marknest/api/bookmarks/models"
	"github.com/marknest/api/internal/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CreateBookmark(ctx context.Context, owner models.OwnerID, url, tagline string) (*models.Bookmark, error) {
	args := m.Called(ctx, owner, url, tagline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bookmark), args.Error(1)
}

func (m *MockService) ListRecent(ctx context.Context, owner models.OwnerID) ([]models.Bookmark, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bookmark), args.Error(1)
}

func (m *MockService) ListOrdered(ctx context.Context, owner models.OwnerID) ([]models.Bookmark, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bookmark), args.Error(1)
}

func (m *MockService) DeleteBookmark(ctx context.Context, owner models.OwnerID, id uuid.UUID) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}

func (m *MockService) Reorder(ctx context.Context, owner models.OwnerID, id uuid.UUID, newPosition int) error {
	args := m.Called(ctx, owner, id, newPosition)
	return args.Error(0)
}

func testApp(svc *MockService) *fiber.App {
	app := fiber.New()
	handler := NewBookmarkHandler(svc)
	app.Post("/bookmarks", handler.Create)
	app.Get("/bookmarks", handler.ListRecent)
	app.Get("/bookmarks/ordered", handler.ListOrdered)
	app.Put("/bookmarks/reorder", handler.Reorder)
	return app
}

func jsonRequest(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(types.HeaderContentType, "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(MockService)
		bookmark := &models.Bookmark{
			ObjectId: uuid.Must(uuid.NewV4()),
			Owner:    "a@x.com",
			URL:      "https://e.com",
			Order:    1,
		}
		svc.On("CreateBookmark", mock.Anything, models.OwnerID("a@x.com"), "https://e.com", "").
			Return(bookmark, nil).Once()

		app := testApp(svc)
		resp := jsonRequest(t, app, http.MethodPost, "/bookmarks", `{"email":"a@x.com","url":"https://e.com"}`)

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var body models.Bookmark
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, "https://e.com", body.URL)
		svc.AssertExpectations(t)
	})

	t.Run("missing email is unauthorized", func(t *testing.T) {
		app := testApp(new(MockService))
		resp := jsonRequest(t, app, http.MethodPost, "/bookmarks", `{"url":"https://e.com"}`)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing url is bad request", func(t *testing.T) {
		app := testApp(new(MockService))
		resp := jsonRequest(t, app, http.MethodPost, "/bookmarks", `{"email":"a@x.com"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("duplicate is conflict", func(t *testing.T) {
		svc := new(MockService)
		svc.On("CreateBookmark", mock.Anything, models.OwnerID("a@x.com"), "https://e.com", "").
			Return(nil, bookmarkerrors.ErrDuplicateBookmark).Once()

		app := testApp(svc)
		resp := jsonRequest(t, app, http.MethodPost, "/bookmarks", `{"email":"a@x.com","url":"https://e.com"}`)

		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestListHandlers(t *testing.T) {
	t.Run("recent", func(t *testing.T) {
		svc := new(MockService)
		svc.On("ListRecent", mock.Anything, models.OwnerID("a@x.com")).
			Return([]models.Bookmark{{URL: "https://e.com"}}, nil).Once()

		app := testApp(svc)
		resp := jsonRequest(t, app, http.MethodGet, "/bookmarks?email=a@x.com", "")

		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("ordered", func(t *testing.T) {
		svc := new(MockService)
		svc.On("ListOrdered", mock.Anything, models.OwnerID("a@x.com")).
			Return([]models.Bookmark{{URL: "https://e.com", Order: 1}}, nil).Once()

		app := testApp(svc)
		resp := jsonRequest(t, app, http.MethodGet, "/bookmarks/ordered?email=a@x.com", "")

		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing email", func(t *testing.T) {
		app := testApp(new(MockService))
		resp := jsonRequest(t, app, http.MethodGet, "/bookmarks", "")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestReorderHandler(t *testing.T) {
	id := uuid.Must(uuid.NewV4())

	t.Run("ok", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Reorder", mock.Anything, models.OwnerID("a@x.com"), id, 2).Return(nil).Once()

		app := testApp(svc)
		resp := jsonRequest(t, app, http.MethodPut, "/bookmarks/reorder",
			`{"email":"a@x.com","bookmarkId":"`+id.String()+`","newOrder":2}`)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("zero order rejected", func(t *testing.T) {
		app := testApp(new(MockService))
		resp := jsonRequest(t, app, http.MethodPut, "/bookmarks/reorder",
			`{"email":"a@x.com","bookmarkId":"`+id.String()+`","newOrder":0}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown bookmark", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Reorder", mock.Anything, models.OwnerID("a@x.com"), id, 1).
			Return(bookmarkerrors.ErrBookmarkNotFound).Once()

		app := testApp(svc)
		resp := jsonRequest(t, app, http.MethodPut, "/bookmarks/reorder",
			`{"email":"a@x.com","bookmarkId":"`+id.String()+`","newOrder":1}`)

		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteHandler(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	user := types.UserContext{UserID: uuid.Must(uuid.NewV4()), Email: "a@x.com", Name: "Alice"}

	appWithUser := func(svc *MockService, withUser bool) *fiber.App {
		app := fiber.New()
		handler := NewBookmarkHandler(svc)
		app.Delete("/bookmarks/:id", func(c *fiber.Ctx) error {
			if withUser {
				c.Locals(types.UserCtxName, user)
			}
			return c.Next()
		}, handler.Delete)
		return app
	}

	t.Run("ok", func(t *testing.T) {
		svc := new(MockService)
		svc.On("DeleteBookmark", mock.Anything, models.OwnerID("a@x.com"), id).Return(nil).Once()

		app := appWithUser(svc, true)
		resp := jsonRequest(t, app, http.MethodDelete, "/bookmarks/"+id.String(), "")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("no user context", func(t *testing.T) {
		app := appWithUser(new(MockService), false)
		resp := jsonRequest(t, app, http.MethodDelete, "/bookmarks/"+id.String(), "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("not owned", func(t *testing.T) {
		svc := new(MockService)
		svc.On("DeleteBookmark", mock.Anything, models.OwnerID("a@x.com"), id).
			Return(bookmarkerrors.ErrBookmarkNotFound).Once()

		app := appWithUser(svc, true)
		resp := jsonRequest(t, app, http.MethodDelete, "/bookmarks/"+id.String(), "")

		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
