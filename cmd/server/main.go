package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/marknest/api/auth"
	loginUC "github.com/marknest/api/auth/login"
	authRepository "github.com/marknest/api/auth/repository"
	signupUC "github.com/marknest/api/auth/signup"
	usersUC "github.com/marknest/api/auth/users"
	"github.com/marknest/api/bookmarks"
	bookmarkHandlers "github.com/marknest/api/bookmarks/handlers"
	bookmarkRepository "github.com/marknest/api/bookmarks/repository"
	bookmarkServices "github.com/marknest/api/bookmarks/services"
	"github.com/marknest/api/internal/cache"
	"github.com/marknest/api/internal/database/postgres"
	"github.com/marknest/api/internal/middleware/requestid"
	platformconfig "github.com/marknest/api/internal/platform/config"
	"github.com/marknest/api/resolver"
)

func main() {
	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load platform config: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			log.Printf("[ErrorHandler] Path: %s, Error: %v, Code: %d", c.Path(), err, code)

			// If response already set by handler, don't override it
			if len(c.Response().Body()) > 0 {
				return nil
			}

			return c.Status(code).JSON(fiber.Map{
				"error": "An unexpected error occurred",
			})
		},
	})

	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.WebDomain,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, PATCH, OPTIONS",
	}))

	ctx := context.Background()
	pgClient, err := postgres.NewClient(ctx, &cfg.Database.Postgres)
	if err != nil {
		log.Fatalf("Failed to create postgres client: %v", err)
	}
	defer pgClient.Close()

	cacheService := cache.New(cfg.Cache)

	contentResolver := resolver.New(cfg.Bookmarks, cacheService, cfg.Cache.TTL)

	userRepo := authRepository.NewPostgresRepository(pgClient)
	bookmarkRepo := bookmarkRepository.NewPostgresRepository(pgClient)

	signupService := signupUC.NewService(userRepo, &signupUC.ServiceConfig{JWTConfig: cfg.JWT})
	loginService := loginUC.NewService(userRepo, &loginUC.ServiceConfig{JWTConfig: cfg.JWT})
	usersService := usersUC.NewService(userRepo)
	bookmarkService := bookmarkServices.NewService(bookmarkRepo, contentResolver)

	auth.RegisterRoutes(app, &auth.Handlers{
		SignupHandler: signupUC.NewHandler(signupService),
		LoginHandler:  loginUC.NewHandler(loginService),
		UsersHandler:  usersUC.NewHandler(usersService),
	}, cfg)

	bookmarks.RegisterRoutes(app, &bookmarks.Handlers{
		BookmarkHandler: bookmarkHandlers.NewBookmarkHandler(bookmarkService),
	}, cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Starting Marknest API server on %s", addr)
	log.Fatal(app.Listen(addr))
}
