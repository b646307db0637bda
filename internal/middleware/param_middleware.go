package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TLMHoang/TriviaAPI/internal/handler/dto"
)

// ExtractUintParam создает middleware для извлечения и валидации числового параметра URL.
// paramName - имя параметра в URL (например, "id").
// contextKey - ключ, под которым значение будет сохранено в контексте Gin.
// Нечисловой параметр означает, что такого ресурса нет: отвечаем 404.
func ExtractUintParam(paramName, contextKey string) gin.HandlerFunc {
	return ExtractUintParamWithRangeStatus(paramName, contextKey, http.StatusNotFound)
}

// ExtractUintParamWithRangeStatus работает как ExtractUintParam, но для числа из одних цифр,
// которое не помещается в uint, отвечает статусом rangeStatus.
// Нецифровой параметр по-прежнему даёт 404.
func ExtractUintParamWithRangeStatus(paramName, contextKey string, rangeStatus int) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param(paramName)
		id, err := strconv.ParseUint(idStr, 10, strconv.IntSize)
		if err != nil {
			status := http.StatusNotFound
			if errors.Is(err, strconv.ErrRange) {
				status = rangeStatus
			}
			c.AbortWithStatusJSON(status, dto.NewErrorResponse(status))
			return
		}
		// Сохраняем как uint для единообразия
		c.Set(contextKey, uint(id))
		c.Next()
	}
}
