package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/codemend/codemend/pkg/cache"
	"github.com/codemend/codemend/pkg/config"
	"github.com/codemend/codemend/pkg/domain/outcome"
	"github.com/codemend/codemend/pkg/fix"
	handlers "github.com/codemend/codemend/pkg/handlers/http"
	"github.com/codemend/codemend/pkg/infra/database"
	"github.com/codemend/codemend/pkg/infra/engines/factory"
	infraLogger "github.com/codemend/codemend/pkg/infra/logger"
	"github.com/codemend/codemend/pkg/infra/prometheus"
	"github.com/codemend/codemend/pkg/infra/recorder"
	"github.com/codemend/codemend/pkg/infra/repository"
	"github.com/codemend/codemend/pkg/server"
	"github.com/joho/godotenv"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger()

	// Load configuration
	if err := config.Load("./config"); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	prometheus.Initialize()

	// Outcome persistence is optional; without a database the recorder
	// still feeds the prometheus counters.
	var outcomeRepo outcome.Repository
	if cfg.Database.Enabled {
		db, err := database.NewDB(logger, &database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			logger.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		outcomeRepo = repository.NewOutcomeRepository(db.DB)
	}

	var resultCache *cache.Cache
	if cfg.Redis.Enabled {
		c, err := cache.NewCache(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TLS:      cfg.Redis.TLS,
		})
		if err != nil {
			logger.Fatalf("Failed to initialize cache: %v", err)
		}
		resultCache = c
		defer func() {
			if err := resultCache.Close(); err != nil {
				logger.WithError(err).Warn("failed to close cache")
			}
		}()
	}

	outcomeRecorder := recorder.NewRecorder(logger, outcomeRepo)
	defer outcomeRecorder.Shutdown()

	engineLocator := factory.NewEngineLocator()

	fixService := fix.NewService(logger, fix.Config{
		PreferGenerative: cfg.Fixer.PreferGenerative,
		DefaultEngine:    cfg.Fixer.DefaultEngine,
		EngineTimeout:    cfg.Fixer.EngineTimeout(),
		Engines:          cfg.Engines.Engines,
	}, engineLocator, outcomeRecorder)

	handlerTransport := server.HandlerTransport{
		FixHandler:      handlers.NewFixHandler(logger, fixService, resultCache),
		ClassifyHandler: handlers.NewClassifyHandler(logger),
	}

	srv := server.NewServer(cfg, logger, handlerTransport)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	fmt.Println("shutting down server...")
	if err := srv.Shutdown(); err != nil {
		fmt.Println("error shutting down server:", err)
		os.Exit(1)
	}
	fmt.Println("server gracefully stopped")
}
