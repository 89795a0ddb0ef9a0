package page

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRunsAllTasksInParallel(t *testing.T) {
	var running int32
	var peak int32

	task := func(name string) Task {
		return Task{Name: name, Run: func(ctx context.Context) error {
			n := atomic.AddInt32(&running, 1)
			for {
				old := atomic.LoadInt32(&peak)
				if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			return nil
		}}
	}

	err := Load(context.Background(), task("loans"), task("members"), task("fines"))
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&peak), "tasks should overlap")
}

func TestLoadAnyFailureFailsTheWholeLoad(t *testing.T) {
	boom := errors.New("fetch members failed")
	var finished int32

	err := Load(context.Background(),
		Task{Name: "loans", Run: func(ctx context.Context) error {
			atomic.AddInt32(&finished, 1)
			return nil
		}},
		Task{Name: "members", Run: func(ctx context.Context) error {
			return boom
		}},
	)
	require.Error(t, err)
	assert.Equal(t, boom, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&finished), "other tasks still settle before Load returns")
}

func TestLoadCancelledContextWins(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Load(ctx, Task{Name: "loans", Run: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestSwapCancelsThePreviousVisit(t *testing.T) {
	r := NewRegistry()

	first := NewState(context.Background(), "/BorrowPage")
	r.Swap("sess", first)

	second := NewState(context.Background(), "/BorrowPage")
	r.Swap("sess", second)

	select {
	case <-first.Context().Done():
	default:
		t.Fatal("swapping in a new visit must cancel the previous one")
	}
	require.NoError(t, second.Context().Err())

	got, ok := r.Get("sess", "/BorrowPage")
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestDropSessionClosesEveryPage(t *testing.T) {
	r := NewRegistry()
	a := NewState(context.Background(), "/mybooks")
	b := NewState(context.Background(), "/members")
	r.Swap("sess", a)
	r.Swap("sess", b)

	r.DropSession("sess")

	assert.Error(t, a.Context().Err())
	assert.Error(t, b.Context().Err())
	_, ok := r.Get("sess", "/mybooks")
	assert.False(t, ok)
}
