package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"vidstash/config"
	"vidstash/handlers"
	"vidstash/internal/gateway"
	"vidstash/internal/metadata"
	"vidstash/internal/session"
	"vidstash/internal/store"
	"vidstash/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := config.NewLogger()

	db, err := config.NewSupabase(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize Supabase: %v", err)
	}

	policy, ok := store.ParseDuplicatePolicy(cfg.DuplicatePolicy)
	if !ok {
		logger.Fatalf("Invalid DUPLICATE_POLICY %q", cfg.DuplicatePolicy)
	}

	sessions := session.NewManager()
	collection := store.New(
		gateway.NewSupabase(db, logger),
		metadata.NewYouTubeClient(logger),
		sessions,
		logger,
		store.Options{
			CallTimeout: cfg.GatewayTimeout,
			Duplicates:  policy,
		},
	)

	h := handlers.NewApplicationHandler(collection, sessions, db, logger)

	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.RequestLogger(logger))

	// Health check route
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "vidstash is healthy",
		})
	})

	// API v1 routes
	apiV1 := app.Group("/api/v1")

	// Auth routes
	apiV1.Post("/auth/signin", h.SignIn)
	apiV1.Post("/auth/signout", h.SignOut)

	// Video routes
	apiV1.Get("/videos", h.ListVideos)
	apiV1.Post("/videos", h.AddVideo)
	apiV1.Post("/videos/import", h.ImportVideo)
	apiV1.Delete("/videos/:id", h.DeleteVideo)
	apiV1.Post("/videos/:id/toggle-pin", h.TogglePin)

	// Note routes
	apiV1.Post("/videos/:id/notes", h.AddNote)
	apiV1.Patch("/videos/:id/notes/:index", h.UpdateNote)
	apiV1.Delete("/videos/:id/notes/:index", h.DeleteNote)

	// Tag routes
	apiV1.Post("/videos/:id/tags", h.AddTag)
	apiV1.Delete("/videos/:id/tags/:tag", h.RemoveTag)

	// Board routes
	apiV1.Get("/boards", h.ListBoards)
	apiV1.Post("/boards", h.CreateBoard)
	apiV1.Patch("/boards/:id", h.RenameBoard)
	apiV1.Delete("/boards/:id", h.DeleteBoard)
	apiV1.Post("/boards/:id/videos", h.AddVideoToBoard)
	apiV1.Delete("/boards/:id/videos/:videoId", h.RemoveVideoFromBoard)

	// View selection
	apiV1.Put("/view/tab", h.SetActiveTab)

	logger.Infof("Starting vidstash on %s", cfg.ListenAddr)
	if err := app.Listen(cfg.ListenAddr); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
}
