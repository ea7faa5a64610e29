package backend

import (
	"errors"
	"fmt"
)

// ErrInvalidResponse бэкенд ответил 2xx, но тело не удалось разобрать как JSON
var ErrInvalidResponse = errors.New("Invalid response format from server")

// APIError бэкенд ответил статусом не из диапазона 2xx.
// Message - наиболее точное сообщение об ошибке, которое удалось извлечь из ответа.
type APIError struct {
	StatusCode int
	Message    string
}

func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

func (e *APIError) Error() string {
	return e.Message
}

// TransportError запрос не дошел до бэкенда или ответ не был получен
type TransportError struct {
	Op  string
	err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: backend unavailable: %v", e.Op, e.err)
}

func (e *TransportError) Unwrap() error {
	return e.err
}
