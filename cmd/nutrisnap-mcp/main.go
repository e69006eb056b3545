// The MCP server runs next to the main app and reads the same database. Start
// the main app first so migrations have created it.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/nutrisnap/internal/db"
	"github.com/terraincognita07/nutrisnap/internal/mcp"
)

func main() {
	dbPath := getEnv("DB_PATH", filepath.Join("data", "nutrisnap.db"))
	port := getEnv("MCP_PORT", "3001")

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "NutriSnap MCP",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	server := mcp.NewServer(db.NewRepositories(database))
	server.Register(app)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("NutriSnap MCP server on http://localhost:%s (db: %s)", port, dbPath)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
