package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TLMHoang/TriviaAPI/internal/handler/dto"
	"github.com/TLMHoang/TriviaAPI/internal/middleware"
	apperrors "github.com/TLMHoang/TriviaAPI/internal/pkg/errors"
)

// abortWithStatus отвечает конвертом ошибки с заданным статусом
func abortWithStatus(c *gin.Context, status int) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(status))
}

// respondError сопоставляет ошибку сервиса с HTTP-статусом и отправляет конверт ошибки
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		abortWithStatus(c, http.StatusNotFound)
	case errors.Is(err, apperrors.ErrUnprocessable), errors.Is(err, apperrors.ErrValidation):
		abortWithStatus(c, http.StatusUnprocessableEntity)
	default:
		logger.Error("internal server error",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err))
		abortWithStatus(c, http.StatusInternalServerError)
	}
}
