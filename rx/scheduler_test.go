package rx_test

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/boookk/bithumb-practice/rx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func TestWorker_Order(t *testing.T) {
	w := rx.NewSingleScheduler()
	defer func() {
		_ = w.Close()
	}()
	var seen []int
	for i := 0; i < 100; i++ {
		i := i
		w.Do(context.Background(), func(ctx context.Context) {
			seen = append(seen, i)
		})
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, w.AwaitIdle(ctx))
	require.Len(t, seen, 100)
	for i, v := range seen {
		assert.Equal(t, i, v)
	}
}

func TestWorker_Reentrant(t *testing.T) {
	w := rx.NewSingleScheduler()
	defer func() {
		_ = w.Close()
	}()
	var seen []string
	w.Do(context.Background(), func(ctx context.Context) {
		seen = append(seen, "outer")
		w.Do(ctx, func(ctx context.Context) {
			seen = append(seen, "inner")
		})
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, w.AwaitIdle(ctx))
	assert.Equal(t, []string{"outer", "inner"}, seen)
}

func TestWorker_AwaitIdleTimeout(t *testing.T) {
	w := rx.NewSingleScheduler()
	defer func() {
		_ = w.Close()
	}()
	release := make(chan struct{})
	w.Do(context.Background(), func(ctx context.Context) {
		<-release
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := w.AwaitIdle(ctx)
	assert.Error(t, err)
	close(release)
}

func TestWorker_Panic(t *testing.T) {
	w := rx.NewSingleScheduler()
	defer func() {
		_ = w.Close()
	}()
	n := atomic.NewInt32(0)
	w.Do(context.Background(), func(ctx context.Context) {
		panic("boom")
	})
	w.Do(context.Background(), func(ctx context.Context) {
		n.Inc()
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, w.AwaitIdle(ctx))
	assert.Equal(t, int32(1), n.Load(), "worker should survive a panic")
}

func TestWorker_Close(t *testing.T) {
	w := rx.NewSingleScheduler()
	n := atomic.NewInt32(0)
	for i := 0; i < 3; i++ {
		w.Do(context.Background(), func(ctx context.Context) {
			time.Sleep(5 * time.Millisecond)
			n.Inc()
		})
	}
	assert.NoError(t, w.Close())
	assert.Equal(t, int32(3), n.Load(), "queued tasks should run before close returns")
	assert.NoError(t, w.Close())
	assert.Panics(t, func() {
		w.Do(context.Background(), func(ctx context.Context) {})
	})
}

func TestImmediateScheduler(t *testing.T) {
	ran := false
	rx.ImmediateScheduler().Do(context.Background(), func(ctx context.Context) {
		ran = true
	})
	assert.True(t, ran, "should run inline")
}

func TestElasticScheduler(t *testing.T) {
	sc := rx.NewElasticScheduler(2)
	defer func() {
		_ = sc.Close()
	}()
	wg := &sync.WaitGroup{}
	n := atomic.NewInt32(0)
	wg.Add(10)
	for i := 0; i < 10; i++ {
		sc.Do(context.Background(), func(ctx context.Context) {
			n.Inc()
			wg.Done()
		})
	}
	wg.Wait()
	assert.Equal(t, int32(10), n.Load())
}

func BenchmarkRoutine(b *testing.B) {
	wg := &sync.WaitGroup{}
	wg.Add(b.N)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		go func(ctx context.Context) {
			for i := 0; i < 100000; i++ {
				math.Sincos(math.Pi)
			}
			wg.Done()
		}(context.Background())
	}
	wg.Wait()
}

func BenchmarkElastic(b *testing.B) {
	wg := &sync.WaitGroup{}
	wg.Add(b.N)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rx.ElasticScheduler().
			Do(context.Background(), func(ctx context.Context) {
				for i := 0; i < 100000; i++ {
					math.Sincos(math.Pi)
				}
				wg.Done()
			})
	}
	wg.Wait()
}

func BenchmarkSingle(b *testing.B) {
	w := rx.NewSingleScheduler()
	defer func() {
		_ = w.Close()
	}()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Do(context.Background(), func(ctx context.Context) {
			math.Sincos(math.Pi)
		})
	}
	_ = w.AwaitIdle(context.Background())
}

func BenchmarkFlux_BlockSlice(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = rx.Range(0, 100).
			Filter(func(n int) bool {
				return n%2 == 0
			}).
			BlockSlice(context.Background())
	}
}
