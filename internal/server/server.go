package server

import (
	"context"
	"log"

	"weaponforge-be/internal/bootstrap"
	"weaponforge-be/internal/config"
	"weaponforge-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:             cfg.App.BodyLimit,
		DisableStartupMessage: cfg.IsProduction(),
	})

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.App.CorsAllowedOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Type",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger))

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("Server is running on http://%s", s.cfg.App.BindAddr)
	return s.app.Listen(s.cfg.App.BindAddr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/v1")

	c.HealthController.RegisterRoutes(api)
	c.WeaponController.RegisterRoutes(api)
	c.TripoController.RegisterRoutes(api)
}
