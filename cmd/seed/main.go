package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/TLMHoang/TriviaAPI/internal/config"
	"github.com/TLMHoang/TriviaAPI/internal/logger"
	"github.com/TLMHoang/TriviaAPI/internal/seed"
	"github.com/TLMHoang/TriviaAPI/pkg/database"
)

func main() {
	file := flag.String("file", "data/trivia.json", "path to the JSON fixture with categories and questions")
	truncate := flag.Bool("truncate", false, "remove existing questions and categories before loading")
	flag.Parse()

	// .env опционален
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fx, err := seed.Load(*file)
	if err != nil {
		log.Fatal("failed to load fixture", zap.Error(err))
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("failed to create schema", zap.Error(err))
	}

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		// Для PostgreSQL используем COPY через pgx
		pool, err := database.NewPgxPool(ctx, cfg.Database)
		if err != nil {
			log.Fatal("failed to open pgx pool", zap.Error(err))
		}
		defer pool.Close()

		copied, err := seed.CopyToPostgres(ctx, pool, fx, *truncate)
		if err != nil {
			log.Fatal("failed to seed database", zap.Error(err))
		}
		log.Info("questions copied", zap.Int64("rows", copied))
	default:
		if err := seed.InsertWithGorm(ctx, db, fx, *truncate); err != nil {
			log.Fatal("failed to seed database", zap.Error(err))
		}
	}

	for _, c := range fx.Categories {
		log.Info("category seeded",
			zap.Uint("id", c.ID),
			zap.String("type", c.Type),
			zap.Int("questions", fx.CountByCategory(c.ID)))
	}
	log.Info("seed completed",
		zap.String("file", *file),
		zap.String("driver", cfg.Database.Driver),
		zap.Int("questions", fx.CountByCategory(0)),
		zap.Bool("truncate", *truncate))
}
