// Package request примитивы для выполнения запросов формами:
// мутация (действие с побочным эффектом) и запрос по ключу.
// Каждый вызов возвращает Result, а текущее состояние формы - это явный State.
package request

import "errors"

// ErrInFlight предыдущий запрос этой формы еще не завершился
var ErrInFlight = errors.New("request is already in flight")

// State состояние запроса формы
type State int

const (
	// Idle запрос не выполнялся или состояние сброшено
	Idle State = iota
	// Pending запрос выполняется
	Pending
	// Success последний запрос завершился успешно
	Success
	// Error последний запрос завершился ошибкой
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Success:
		return "success"
	case Error:
		return "error"
	}
	return "unknown"
}

// Result итог конкретного вызова
type Result[T any] struct {
	Data  T
	Err   error
	State State
}

// OK запрос завершился успешно
func (r Result[T]) OK() bool {
	return r.State == Success
}

func successResult[T any](data T) Result[T] {
	return Result[T]{Data: data, State: Success}
}

func errorResult[T any](err error) Result[T] {
	return Result[T]{Err: err, State: Error}
}
