package request

import (
	"context"
	"sync"
)

// QueryFunc загружает данные по ключу
type QueryFunc[T any] func(ctx context.Context, key string) (T, error)

// Query запрос данных по строковому ключу.
// Пока ключ пустой, запрос выключен и fn не вызывается.
type Query[T any] struct {
	fn QueryFunc[T]

	mu    sync.Mutex
	key   string
	state State
	data  T
	err   error
	// seq номер текущего ключа, чтобы результат по старому ключу не перетер данные нового
	seq uint64
}

func NewQuery[T any](fn QueryFunc[T]) *Query[T] {
	return &Query[T]{fn: fn}
}

// SetKey меняет ключ. При смене ключа данные сбрасываются.
func (q *Query[T]) SetKey(key string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.key == key {
		return
	}
	var zero T
	q.key = key
	q.data = zero
	q.err = nil
	q.seq++
	if q.state != Pending {
		q.state = Idle
	}
}

func (q *Query[T]) Key() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.key
}

// Enabled запрос включен, только если ключ не пустой
func (q *Query[T]) Enabled() bool {
	return q.Key() != ""
}

// Refetch выполняет запрос по текущему ключу и возвращает итог именно этого вызова.
// Для выключенного запроса возвращает Idle без обращения к fn.
func (q *Query[T]) Refetch(ctx context.Context) Result[T] {
	q.mu.Lock()
	if q.key == "" {
		q.mu.Unlock()
		return Result[T]{State: Idle}
	}
	if q.state == Pending {
		q.mu.Unlock()
		return errorResult[T](ErrInFlight)
	}
	key, seq := q.key, q.seq
	q.state = Pending
	q.mu.Unlock()

	data, err := q.fn(ctx, key)

	q.mu.Lock()
	defer q.mu.Unlock()
	if err != nil {
		q.store(seq, data, err, Error)
		return errorResult[T](err)
	}
	q.store(seq, data, nil, Success)
	return successResult(data)
}

// store запоминает результат, если ключ за время запроса не поменялся
func (q *Query[T]) store(seq uint64, data T, err error, state State) {
	if seq != q.seq {
		q.state = Idle
		return
	}
	if err != nil {
		var zero T
		data = zero
	}
	q.data, q.err, q.state = data, err, state
}

func (q *Query[T]) Data() T {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.data
}

func (q *Query[T]) Err() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.err
}

func (q *Query[T]) State() State {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

func (q *Query[T]) IsPending() bool {
	return q.State() == Pending
}
