package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/marknest/api/auth/login"
	"github.com/marknest/api/auth/signup"
	"github.com/marknest/api/auth/users"
	"github.com/marknest/api/internal/middleware/ratelimit"
	platformconfig "github.com/marknest/api/internal/platform/config"
)

type Handlers struct {
	SignupHandler *signup.Handler
	LoginHandler  *login.Handler
	UsersHandler  *users.Handler
}

// RegisterRoutes wires the auth endpoints. Signup and login carry their own
// rate limiters to slow brute forcing.
func RegisterRoutes(app *fiber.App, handlers *Handlers, cfg *platformconfig.Config) {
	group := app.Group("/auth")

	group.Post("/signup", ratelimit.New("signup", cfg.RateLimits.Signup), handlers.SignupHandler.Handle)
	group.Post("/login", ratelimit.New("login", cfg.RateLimits.Login), handlers.LoginHandler.Handle)
	group.Get("/users", handlers.UsersHandler.Handle)
}
