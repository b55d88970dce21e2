package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/sheetforge/sheetforge/internal/catalog"
	"github.com/sheetforge/sheetforge/internal/character"
	"github.com/sheetforge/sheetforge/internal/config"
	"github.com/sheetforge/sheetforge/internal/handlers/api"
	"github.com/sheetforge/sheetforge/internal/repositories/characters"
	charservice "github.com/sheetforge/sheetforge/internal/services/character"
	"github.com/sheetforge/sheetforge/internal/uuid"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load reference content
	cat, err := catalog.Load(cfg.Content.DataDir, cfg.Content.CoreSources)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("Loaded catalog from %s", cfg.Content.DataDir)

	// Pick the character repository. Redis when reachable, in-memory
	// otherwise so local development works without infrastructure.
	repo := buildRepository(cfg)

	idGen := uuid.NewGoogleUUIDGenerator()

	engine, err := character.NewEngine(&character.EngineConfig{
		Catalog:     cat,
		IDGenerator: idGen,
	})
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	svc, err := charservice.NewService(&charservice.ServiceConfig{
		Catalog:       cat,
		Engine:        engine,
		Repository:    repo,
		UUIDGenerator: idGen,
	})
	if err != nil {
		log.Fatalf("Failed to create character service: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	handler := api.NewHandler(svc, cat, cfg.Content.FilterSources)
	handler.RegisterRoutes(e, cfg.API.BearerToken)

	// Start server
	go func() {
		if err := e.Start(cfg.API.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()
	log.Printf("Listening on %s", cfg.API.Addr)

	// Wait for interrupt
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// buildRepository connects to Redis when it responds to a ping, falling
// back to the in-memory store
func buildRepository(cfg *config.Config) characters.Repository {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable at %s, using in-memory store: %v", cfg.Redis.Addr, err)
		return characters.NewInMemoryRepository()
	}

	repo, err := characters.NewRedisRepository(&characters.RedisRepoConfig{Client: client})
	if err != nil {
		log.Fatalf("Failed to create redis repository: %v", err)
	}
	log.Printf("Using Redis at %s", cfg.Redis.Addr)
	return repo
}
