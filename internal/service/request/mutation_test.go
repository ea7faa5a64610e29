package request

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutation_MutateSuccess(t *testing.T) {
	var calls int32
	m := NewMutation(func(ctx context.Context, req string) (int, error) {
		atomic.AddInt32(&calls, 1)
		return len(req), nil
	})
	assert.Equal(t, Idle, m.State())

	var gotData int
	var gotReq string
	res := m.Mutate(context.Background(), "hello", Callbacks[string, int]{
		OnSuccess: func(data int, req string) {
			gotData, gotReq = data, req
		},
		OnError: func(err error, req string) {
			t.Fatalf("unexpected error: %v", err)
		},
	})

	assert.True(t, res.OK())
	assert.Equal(t, 5, res.Data)
	assert.NoError(t, res.Err)
	assert.Equal(t, 5, gotData)
	assert.Equal(t, "hello", gotReq)
	assert.Equal(t, Success, m.State())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestMutation_MutateError(t *testing.T) {
	boom := errors.New("boom")
	var calls int32
	m := NewMutation(func(ctx context.Context, req string) (int, error) {
		atomic.AddInt32(&calls, 1)
		return 0, boom
	})

	var gotErr error
	res := m.Mutate(context.Background(), "hello", Callbacks[string, int]{
		OnError: func(err error, req string) {
			gotErr = err
		},
	})

	assert.False(t, res.OK())
	assert.Equal(t, Error, res.State)
	assert.ErrorIs(t, res.Err, boom)
	assert.ErrorIs(t, gotErr, boom)
	assert.Equal(t, Error, m.State())
	// повторов нет
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	m.Reset()
	assert.Equal(t, Idle, m.State())
}

func TestMutation_SecondMutateWhilePending(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	m := NewMutation(func(ctx context.Context, req string) (string, error) {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		return "done", nil
	})

	first := make(chan Result[string], 1)
	go func() {
		first <- m.Mutate(context.Background(), "first", Callbacks[string, string]{})
	}()
	<-started
	assert.True(t, m.IsPending())

	callbackCalled := false
	second := m.Mutate(context.Background(), "second", Callbacks[string, string]{
		OnSuccess: func(string, string) { callbackCalled = true },
		OnError:   func(error, string) { callbackCalled = true },
	})
	assert.ErrorIs(t, second.Err, ErrInFlight)
	assert.False(t, callbackCalled)

	// пока первый запрос не завершен, сброс не действует
	m.Reset()
	assert.True(t, m.IsPending())

	close(release)
	res := <-first
	require.True(t, res.OK())
	assert.Equal(t, "done", res.Data)
	assert.False(t, m.IsPending())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "unknown", State(42).String())
}
