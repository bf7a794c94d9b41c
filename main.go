package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alloc8-join/config"
	"alloc8-join/handlers"
	"alloc8-join/middleware"
	"alloc8-join/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := utils.NewLogger(cfg.LogLevel, cfg.Development())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if _, ok := cfg.Mail.Credential(); !ok {
		// Not fatal: the key is read per request and may be provisioned later.
		logger.Warn("mail provider credential not set, /api/join will answer 500 until it is",
			zap.String("provider", cfg.Mail.Provider),
			zap.String("env", cfg.Mail.CredentialEnv()))
	}

	app := newApp(cfg, logger)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Shutting down server...")
		_ = app.Shutdown()
	}()

	logger.Info("Server starting", zap.String("port", cfg.Port), zap.String("provider", cfg.Mail.Provider))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func newApp(cfg *config.Config, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Alloc-8 Join API",
		DisableStartupMessage: !cfg.Development(),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(logger))
	app.Use(middleware.SetupCORS(cfg.AllowedOrigins))

	// Routes
	api := app.Group("/api")

	join := handlers.NewJoinHandler(cfg.Mail, logger)
	api.Post("/join", join.Join)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	// Landing page assets
	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir)
	}

	return app
}
