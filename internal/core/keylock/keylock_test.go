package keylock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTable_MutualExclusionPerKey(t *testing.T) {
	table := New()
	const workers = 64

	var (
		active    atomic.Int32
		maxActive atomic.Int32
		counter   int // guarded by the table lock for "k"
		wg        sync.WaitGroup
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := table.Do(context.Background(), "k", func(ctx context.Context) error {
				n := active.Add(1)
				for {
					m := maxActive.Load()
					if n <= m || maxActive.CompareAndSwap(m, n) {
						break
					}
				}
				v := counter
				time.Sleep(100 * time.Microsecond)
				counter = v + 1
				active.Add(-1)
				return nil
			})
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Equal(t, workers, counter, "no lost updates")
	require.Equal(t, int32(1), maxActive.Load(), "one critical section at a time")
	require.Equal(t, 0, table.Len(), "entries removed once uncontended")
}

func TestTable_DifferentKeysRunConcurrently(t *testing.T) {
	table := New()
	inA := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_ = table.Do(context.Background(), "a", func(ctx context.Context) error {
			close(inA)
			<-release
			return nil
		})
	}()
	<-inA

	done := make(chan struct{})
	go func() {
		_ = table.Do(context.Background(), "b", func(ctx context.Context) error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("key b blocked behind key a")
	}
	close(release)
}

func TestTable_PropagatesErrorAndReleases(t *testing.T) {
	table := New()
	boom := errors.New("boom")

	err := table.Do(context.Background(), "k", func(ctx context.Context) error { return boom })
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, table.Len())

	// Lock must be free again.
	err = table.Do(context.Background(), "k", func(ctx context.Context) error { return nil })
	require.NoError(t, err)
}

func TestTable_ReleasesOnPanic(t *testing.T) {
	table := New()

	require.Panics(t, func() {
		_ = table.Do(context.Background(), "k", func(ctx context.Context) error { panic("bad") })
	})
	require.Equal(t, 0, table.Len())
	require.NoError(t, table.Do(context.Background(), "k", func(ctx context.Context) error { return nil }))
}

func TestTable_ContextCancelledWhileWaiting(t *testing.T) {
	table := New()
	held := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_ = table.Do(context.Background(), "k", func(ctx context.Context) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	ran := false
	err := table.Do(ctx, "k", func(ctx context.Context) error {
		ran = true
		return nil
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.False(t, ran)

	close(release)
	require.Eventually(t, func() bool { return table.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestTable_EntryCountTracksContention(t *testing.T) {
	table := New()
	held := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_ = table.Do(context.Background(), "x", func(ctx context.Context) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held
	require.Equal(t, 1, table.Len())

	close(release)
	require.Eventually(t, func() bool { return table.Len() == 0 }, time.Second, 5*time.Millisecond)
}
