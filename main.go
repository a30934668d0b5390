// ~/Documents/CODING/coursequiz/main.go
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coursequiz/bot"
	"coursequiz/database"
	"coursequiz/quizgen"
	"coursequiz/repositories"
	"coursequiz/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Warn("⚠️ .env file not found, using system environment variables")
	}

	slog.SetDefault(slog.New(utils.NewLogHandler(os.Stdout, slog.LevelInfo)))

	// Validate critical environment variables
	validateEnvironment()

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		slog.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		slog.Error("❌ Failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var uploader *quizgen.Uploader
	if bucket := os.Getenv("GCS_BUCKET"); bucket != "" {
		uploader, err = quizgen.NewUploader(ctx, bucket)
		if err != nil {
			slog.Error("❌ Failed to initialize storage uploader", "bucket", bucket, "error", err)
			os.Exit(1)
		}
		defer uploader.Close()
		slog.Info("📂 Storage uploader ready", "bucket", bucket)
	} else {
		slog.Warn("⚠️ GCS_BUCKET not set, PDFs will be referenced by their original URL")
	}

	topics := repositories.NewTopicRepository(db)
	client := quizgen.NewClient(os.Getenv("OPENROUTER_API_KEY"), os.Getenv("LLM_MODEL"))

	deps := &bot.Deps{
		Servers:   repositories.NewServerRepository(db),
		Users:     repositories.NewUserRepository(db),
		Levels:    repositories.NewLevelRepository(db),
		Topics:    topics,
		Questions: repositories.NewQuestionRepository(db),
		Stats:     repositories.NewStatsRepository(db),
		Pipeline:  quizgen.NewPipeline(client, topics),
		Uploader:  uploader,
	}

	quizBot, err := bot.New(os.Getenv("DISCORD_TOKEN"), deps)
	if err != nil {
		slog.Error("❌ Failed to create bot session", "error", err)
		os.Exit(1)
	}

	// Keep-alive HTTP server so hosting platforms see the process as
	// healthy.
	go startHealthServer()

	if err := quizBot.Run(); err != nil {
		slog.Error("❌ Failed to start bot", "error", err)
		os.Exit(1)
	}

	slog.Info("🚀 Bot is running. Press CTRL+C to exit.")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("🔄 Shutting down...")
	if err := quizBot.Stop(); err != nil {
		slog.Error("❌ Error closing bot session", "error", err)
	}
}

func startHealthServer() {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	slog.Info("🌐 Health server starting", "port", port)
	if err := app.Listen(":" + port); err != nil {
		slog.Error("❌ Health server failed", "error", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	if os.Getenv("DISCORD_TOKEN") == "" {
		slog.Error("FATAL: DISCORD_TOKEN environment variable must be set")
		os.Exit(1)
	}
	if os.Getenv("OPENROUTER_API_KEY") == "" {
		slog.Error("FATAL: OPENROUTER_API_KEY environment variable must be set")
		os.Exit(1)
	}
}
