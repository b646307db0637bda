package errors

import (
	"errors"
	"fmt"
)

// Ошибки приложения. Сервисы переводят любую ошибку хранилища в один из этих видов,
// хендлеры сопоставляют их с HTTP-статусами.
var (
	// ErrNotFound используется, когда запись или набор результатов пуст либо отсутствует (404).
	ErrNotFound = errors.New("resource not found")

	// ErrUnprocessable используется для невалидных данных изменяющих операций (422).
	ErrUnprocessable = errors.New("unprocessable entity")

	// ErrValidation используется для ошибок валидации входных данных.
	// Хендлеры обрабатывают её так же, как ErrUnprocessable.
	ErrValidation = errors.New("validation failed")
)

// Translate прячет исходную ошибку за видом kind: в цепочке errors.Is остаётся только kind,
// а текст причины сохраняется для логов.
func Translate(kind error, op string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", kind, op)
	}
	return fmt.Errorf("%w: %s: %v", kind, op, cause)
}
