package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// HealthHandler проверяет доступность хранилища и Redis
type HealthHandler struct {
	db     *sql.DB
	redis  redis.UniversalClient // nil, если Redis выключен
	logger *zap.Logger
}

// NewHealthHandler создает обработчик проверки состояния
func NewHealthHandler(db *sql.DB, redisClient redis.UniversalClient, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{db: db, redis: redisClient, logger: logger}
}

// HealthResponse - ответ GET /health
type HealthResponse struct {
	Success  bool   `json:"success"`
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

// Health возвращает 200, если хранилище отвечает, иначе 503
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	resp := HealthResponse{Success: true, Status: "ok", Database: "ok", Redis: "disabled"}

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("database health check failed", zap.Error(err))
		resp.Database = "unavailable"
		resp.Success = false
		resp.Status = "degraded"
	}

	if h.redis != nil {
		resp.Redis = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			// Лимитер работает в режиме fail-open, поэтому Redis не влияет на статус
			h.logger.Warn("redis health check failed", zap.Error(err))
			resp.Redis = "unavailable"
		}
	}

	status := http.StatusOK
	if !resp.Success {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
