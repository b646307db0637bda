package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/TLMHoang/TriviaAPI/internal/config"
	"github.com/TLMHoang/TriviaAPI/internal/handler/dto"
)

// RateLimitConfig содержит настройки rate limiting
type RateLimitConfig struct {
	// MaxRequests - максимальное количество запросов за Window
	MaxRequests int
	// Window - временное окно для подсчёта запросов
	Window time.Duration
	// KeyPrefix - префикс для ключей в Redis
	KeyPrefix string
}

// MutatingRateLimitConfig возвращает лимит для POST/DELETE запросов из конфигурации приложения
func MutatingRateLimitConfig(cfg config.RateLimitConfig) RateLimitConfig {
	return RateLimitConfig{
		MaxRequests: cfg.MaxRequests,
		Window:      cfg.Window,
		KeyPrefix:   "rl:trivia:write",
	}
}

// counterStore - команды Redis, которые нужны лимитеру. redis.UniversalClient ему удовлетворяет.
type counterStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// RateLimiter создаёт middleware для rate limiting на основе Redis
type RateLimiter struct {
	redisClient counterStore
	logger      *zap.Logger
}

// NewRateLimiter создает новый RateLimiter
func NewRateLimiter(redisClient counterStore, logger *zap.Logger) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateLimiter{redisClient: redisClient, logger: logger}
}

// Limit возвращает Gin middleware с заданной конфигурацией.
// Ключ формируется из IP + шаблона маршрута, счётчик живёт одно окно (INCR + EXPIRE).
func (rl *RateLimiter) Limit(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		path := c.FullPath() // шаблон маршрута gin, например "/questions/:id"
		if path == "" {
			path = c.Request.URL.Path
		}

		key := fmt.Sprintf("%s:%s:%s", cfg.KeyPrefix, clientIP, path)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		count, err := rl.redisClient.Incr(ctx, key).Result()
		if err != nil {
			// При ошибке Redis пропускаем запрос (fail-open), но логируем
			rl.logger.Warn("rate limiter redis error, allowing request",
				zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		// Первый запрос в окне - ставим TTL
		if count == 1 {
			if err := rl.redisClient.Expire(ctx, key, cfg.Window).Err(); err != nil {
				rl.logger.Warn("failed to set rate limit ttl", zap.String("key", key), zap.Error(err))
			}
		}

		remaining := cfg.MaxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}

		ttl, _ := rl.redisClient.TTL(ctx, key).Result()
		retryAfter := int(ttl.Seconds())
		if retryAfter <= 0 {
			retryAfter = int(cfg.Window.Seconds())
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", retryAfter))

		if int(count) > cfg.MaxRequests {
			rl.logger.Info("rate limit exceeded",
				zap.String("client_ip", clientIP),
				zap.String("path", path),
				zap.Int64("count", count),
				zap.Int("limit", cfg.MaxRequests))

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(http.StatusTooManyRequests))
			return
		}

		c.Next()
	}
}
