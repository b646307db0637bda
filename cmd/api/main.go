package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/TLMHoang/TriviaAPI/internal/config"
	"github.com/TLMHoang/TriviaAPI/internal/handler"
	"github.com/TLMHoang/TriviaAPI/internal/logger"
	"github.com/TLMHoang/TriviaAPI/internal/middleware"
	pgRepo "github.com/TLMHoang/TriviaAPI/internal/repository/postgres"
	"github.com/TLMHoang/TriviaAPI/internal/service"
	"github.com/TLMHoang/TriviaAPI/pkg/database"
)

func main() {
	// Переменные из .env, если файл есть
	_ = godotenv.Load()

	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	gin.SetMode(cfg.Server.Mode)

	// Инициализируем хранилище
	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	sqlDB, err := database.GetSQLDB(db)
	if err != nil {
		log.Fatal("Failed to get sql.DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			log.Fatal("Failed to create schema", zap.Error(err))
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis нужен только для rate limiting
	var redisClient redis.UniversalClient
	var writeLimit gin.HandlerFunc
	if cfg.Redis.Enabled {
		redisClient, err = database.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis", zap.String("addr", cfg.Redis.Addr))

		limiter := middleware.NewRateLimiter(redisClient, log)
		writeLimit = limiter.Limit(middleware.MutatingRateLimitConfig(cfg.RateLimit))
	}

	// Инициализируем репозитории
	questionRepo := pgRepo.NewQuestionRepo(db)
	categoryRepo := pgRepo.NewCategoryRepo(db)

	// Инициализируем сервисы
	questionService := service.NewQuestionService(questionRepo, categoryRepo, log)
	categoryService := service.NewCategoryService(categoryRepo, log)
	quizService := service.NewQuizService(questionRepo, log)

	// Инициализируем обработчики и роутер
	router := handler.NewRouter(handler.Handlers{
		Question: handler.NewQuestionHandler(questionService, log),
		Category: handler.NewCategoryHandler(categoryService, questionService, log),
		Quiz:     handler.NewQuizHandler(quizService, log),
		Health:   handler.NewHealthHandler(sqlDB, redisClient, log),
	}, handler.RouterOptions{
		Logger:       log,
		AllowOrigins: cfg.CORS.AllowOrigins,
		WriteLimit:   writeLimit,
	})

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server", zap.String("port", cfg.Server.Port), zap.String("driver", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Failed to start server", zap.Error(err))
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}
	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
