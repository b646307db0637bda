package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader - заголовок с идентификатором запроса
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "requestID"

// maxRequestIDLength ограничивает длину входящего идентификатора
const maxRequestIDLength = 128

// RequestID берёт X-Request-ID из запроса или генерирует новый UUID,
// сохраняет его в контексте и возвращает в ответе.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID возвращает идентификатор текущего запроса или пустую строку
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
