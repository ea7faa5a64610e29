package request

import (
	"context"
	"sync"
)

// MutationFunc выполняет действие
type MutationFunc[Req, Resp any] func(ctx context.Context, req Req) (Resp, error)

// Callbacks обработчики результата, передаются в момент вызова Mutate
type Callbacks[Req, Resp any] struct {
	OnSuccess func(data Resp, req Req)
	OnError   func(err error, req Req)
}

// Mutation выполняет не более одного запроса одновременно и не повторяет их.
type Mutation[Req, Resp any] struct {
	fn MutationFunc[Req, Resp]

	mu    sync.Mutex
	state State
}

func NewMutation[Req, Resp any](fn MutationFunc[Req, Resp]) *Mutation[Req, Resp] {
	return &Mutation[Req, Resp]{fn: fn}
}

// Mutate выполняет запрос и вызывает соответствующий обработчик из cb.
// Если предыдущий запрос еще выполняется, fn не вызывается,
// обработчики тоже, а результат содержит ErrInFlight.
func (m *Mutation[Req, Resp]) Mutate(ctx context.Context, req Req, cb Callbacks[Req, Resp]) Result[Resp] {
	if !m.begin() {
		return errorResult[Resp](ErrInFlight)
	}

	data, err := m.fn(ctx, req)
	if err != nil {
		m.finish(Error)
		if cb.OnError != nil {
			cb.OnError(err, req)
		}
		return errorResult[Resp](err)
	}

	m.finish(Success)
	if cb.OnSuccess != nil {
		cb.OnSuccess(data, req)
	}
	return successResult(data)
}

// IsPending выполняется ли сейчас запрос
func (m *Mutation[Req, Resp]) IsPending() bool {
	return m.State() == Pending
}

func (m *Mutation[Req, Resp]) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Reset возвращает мутацию в Idle, если запрос не выполняется
func (m *Mutation[Req, Resp]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Pending {
		m.state = Idle
	}
}

func (m *Mutation[Req, Resp]) begin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Pending {
		return false
	}
	m.state = Pending
	return true
}

func (m *Mutation[Req, Resp]) finish(state State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
}
