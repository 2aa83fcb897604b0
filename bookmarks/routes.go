package bookmarks

import (
	"github.com/gofiber/fiber/v2"
	"github.com/marknest/api/bookmarks/handlers"
	"github.com/marknest/api/internal/middleware/authjwt"
	platformconfig "github.com/marknest/api/internal/platform/config"
)

type Handlers struct {
	BookmarkHandler *handlers.BookmarkHandler
}

// RegisterRoutes wires bookmark endpoints. Deletion requires a bearer token;
// the other operations identify the owner by email in the body or query.
func RegisterRoutes(app *fiber.App, handlers *Handlers, cfg *platformconfig.Config) {
	authMiddleware := authjwt.New(authjwt.Config{PublicKey: cfg.JWT.PublicKey})

	group := app.Group("/bookmarks")

	group.Post("/", handlers.BookmarkHandler.Create)
	group.Get("/", handlers.BookmarkHandler.ListRecent)
	group.Get("/ordered", handlers.BookmarkHandler.ListOrdered)
	group.Put("/reorder", handlers.BookmarkHandler.Reorder)
	group.Delete("/:id", authMiddleware, handlers.BookmarkHandler.Delete)
}
