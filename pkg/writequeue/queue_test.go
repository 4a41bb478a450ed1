package writequeue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueue_ExecuteSerializesFIFO(t *testing.T) {
	q := New(nil, nil)
	defer q.Shutdown(context.Background())

	var mu sync.Mutex
	var order []int

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = q.Execute(context.Background(), func() error {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, order, 10)
}

func TestQueue_ExecuteReturnsFnError(t *testing.T) {
	q := New(nil, nil)
	defer q.Shutdown(context.Background())

	want := assert.AnError
	err := q.Execute(context.Background(), func() error {
		return want
	})
	assert.Equal(t, want, err)
}

func TestQueue_ClosedRejectsWrites(t *testing.T) {
	q := New(nil, nil)
	assert.NoError(t, q.Shutdown(context.Background()))

	err := q.Execute(context.Background(), func() error { return nil })
	assert.ErrorIs(t, err, ErrWriteQueueClosed)
}

func TestQueue_ContextCancel(t *testing.T) {
	q := New(&Config{QueueCapacity: 1, WriteTimeout: time.Second}, nil)
	defer q.Shutdown(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := q.Execute(ctx, func() error {
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
