// Package session хранилище состояния посетителей в памяти.
// Состояние живет, пока к нему обращаются, и удаляется после ttl простоя.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type item[T any] struct {
	value    T
	lastSeen time.Time
}

// Store сессии посетителей. newValue создает состояние новой сессии.
type Store[T any] struct {
	mu       sync.Mutex
	ttl      time.Duration
	items    map[string]*item[T]
	newValue func() T
	now      func() time.Time
}

func NewStore[T any](ttl time.Duration, newValue func() T) *Store[T] {
	return &Store[T]{
		ttl:      ttl,
		items:    make(map[string]*item[T]),
		newValue: newValue,
		now:      time.Now,
	}
}

// Get возвращает состояние сессии id, продлевая ее жизнь
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok || s.expired(it) {
		var zero T
		return zero, false
	}
	it.lastSeen = s.now()
	return it.value, true
}

// GetOrCreate возвращает состояние сессии id.
// Если такой сессии нет или она истекла, создает новую с новым идентификатором.
func (s *Store[T]) GetOrCreate(id string) (string, T) {
	if id != "" {
		if v, ok := s.Get(id); ok {
			return id, v
		}
	}

	newID := uuid.NewString()
	v := s.newValue()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[newID] = &item[T]{value: v, lastSeen: s.now()}
	return newID, v
}

// Len количество сессий, включая еще не удаленные истекшие
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Sweep удаляет истекшие сессии и возвращает их количество
func (s *Store[T]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, it := range s.items {
		if s.expired(it) {
			delete(s.items, id)
			removed++
		}
	}
	return removed
}

// StartSweeper периодически чистит истекшие сессии, пока не отменен ctx
func (s *Store[T]) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		log.Info().Dur("interval", interval).Msg("start session sweeper")
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("shutdown session sweeper...")
				return
			case <-ticker.C:
				if removed := s.Sweep(); removed > 0 {
					log.Debug().Int("removed", removed).Int("left", s.Len()).Msg("sessions swept")
				}
			}
		}
	}()
}

func (s *Store[T]) expired(it *item[T]) bool {
	return s.now().Sub(it.lastSeen) >= s.ttl
}
