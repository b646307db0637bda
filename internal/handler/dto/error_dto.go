package dto

import "net/http"

// errorMessages - фиксированные тексты конверта ошибки
var errorMessages = map[int]string{
	http.StatusBadRequest:          "Bad request",
	http.StatusNotFound:            "Resource not found",
	http.StatusMethodNotAllowed:    "Method not allowed",
	http.StatusUnprocessableEntity: "Unprocessable entity",
	http.StatusTooManyRequests:     "Too many requests",
	http.StatusInternalServerError: "Internal server error",
	http.StatusServiceUnavailable:  "Service unavailable",
}

// ErrorResponse - конверт ошибки: {success: false, error: <код>, message: <текст>}
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// NewErrorResponse создает конверт ошибки для HTTP-статуса
func NewErrorResponse(status int) ErrorResponse {
	message, ok := errorMessages[status]
	if !ok {
		message = http.StatusText(status)
	}
	return ErrorResponse{Success: false, Error: status, Message: message}
}
