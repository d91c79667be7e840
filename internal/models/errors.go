package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound - базовый вид ошибки "не найдено"
	ErrNotFound = errors.New("not found")

	// ErrQueueExhausted - необработанных событий не осталось. Штатное состояние, не сбой.
	ErrQueueExhausted = fmt.Errorf("no unprocessed events: %w", ErrNotFound)

	ErrReviewerNotFound = fmt.Errorf("reviewer: %w", ErrNotFound)

	// ErrInvalidCredentials возвращается и при неизвестном email, и при неверном пароле
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrNotFound)
)

// ValidationError - отсутствующее или некорректное поле запроса
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError создает ошибку валидации для поля
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError сообщает, является ли err (или одна из обернутых ошибок) ошибкой валидации
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
