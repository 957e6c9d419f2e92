package dispatch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDoReturnsValue(t *testing.T) {
	d := New(nil)
	v, err := Do(context.Background(), d, func() (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestDoReturnsError(t *testing.T) {
	d := New(nil)
	boom := errors.New("boom")
	_, err := Do(context.Background(), d, func() (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestDoRecoversPanic(t *testing.T) {
	d := New(nil)
	_, err := Do(context.Background(), d, func() (int, error) {
		panic("browser crashed")
	})
	var panicErr *PanicError
	require.ErrorAs(t, err, &panicErr)
	assert.Equal(t, "browser crashed", err.Error())
}

func TestDoCancelledBeforeDispatch(t *testing.T) {
	d := New(&Options{MaxConcurrent: 1})
	release := make(chan struct{})
	started := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = Do(context.Background(), d, func() (int, error) {
			close(started)
			<-release
			return 0, nil
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	_, err := Do(ctx, d, func() (int, error) {
		called = true
		return 0, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)

	close(release)
	wg.Wait()
}

func TestDoIgnoresCancellationOnceDispatched(t *testing.T) {
	d := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	v, err := Do(ctx, d, func() (int, error) {
		cancel()
		time.Sleep(10 * time.Millisecond)
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestDoBoundsConcurrency(t *testing.T) {
	const limit = 2
	d := New(&Options{MaxConcurrent: limit})
	var inFlight, peak int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Do(context.Background(), d, func() (int, error) {
				n := atomic.AddInt32(&inFlight, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&inFlight, -1)
				return 0, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(limit))
}
