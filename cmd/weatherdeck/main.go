package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	httpapi "github.com/vincentspereira/weatherdeck/internal/api/http"
	"github.com/vincentspereira/weatherdeck/internal/config"
	"github.com/vincentspereira/weatherdeck/internal/geo"
	"github.com/vincentspereira/weatherdeck/internal/scheduler"
	"github.com/vincentspereira/weatherdeck/internal/session"
	"github.com/vincentspereira/weatherdeck/internal/store"
	"github.com/vincentspereira/weatherdeck/internal/util"
	"github.com/vincentspereira/weatherdeck/internal/weather"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	clock := util.RealClock{}

	// Geocoding resolver with simulated lookup latency.
	resolver := geo.NewResolver(cfg.GeoLatency, rand.New(rand.NewSource(time.Now().UnixNano())))

	// Weather synthesizer; unseeded in production, seedable in tests.
	synth := weather.NewSynthesizer(clock, rand.New(rand.NewSource(time.Now().UnixNano())), cfg.ForecastDays)

	// Session store; each session owns its own resolution state machine.
	sessions := store.NewSessionStore(func() *session.Session {
		return session.New(resolver, synth, clock, cfg.DefaultPlace)
	}, cfg.SessionMax, cfg.SessionMaxAge)

	// Janitor that periodically sweeps expired sessions.
	janitor := scheduler.New(sessions, cfg.SweepInterval)
	if err := janitor.Start(); err != nil {
		log.Fatalf("failed to start session janitor: %v", err)
	}
	defer janitor.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weatherdeck",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weatherdeck",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, sessions)

	// Start server with graceful shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
