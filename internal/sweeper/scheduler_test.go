package sweeper

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aevon-lab/devicescout/internal/core/bucket"
	"github.com/aevon-lab/devicescout/internal/core/keylock"
	"github.com/aevon-lab/devicescout/internal/core/lifecycle"
	"github.com/aevon-lab/devicescout/internal/core/storage/memory"
	storagemocks "github.com/aevon-lab/devicescout/internal/mocks/storage"
	"github.com/aevon-lab/devicescout/internal/observation"
)

type runs struct {
	mu     sync.Mutex
	counts map[string]int
	errs   map[string]int
}

func (r *runs) SweeperRun(task string, _ int64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = make(map[string]int)
		r.errs = make(map[string]int)
	}
	r.counts[task]++
	if err != nil {
		r.errs[task]++
	}
}

func (r *runs) get(task string) (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[task], r.errs[task]
}

func TestScheduler_RunsTasksUntilStopped(t *testing.T) {
	bus := lifecycle.NewBus(16)
	t.Cleanup(bus.Close)

	var ticks, finals atomic.Int32
	recorder := &runs{}
	task := Task{
		Name: "count",
		Run: func(context.Context) (int64, error) {
			ticks.Add(1)
			return 1, nil
		},
		Final: func(context.Context) (int64, error) {
			finals.Add(1)
			return 0, nil
		},
	}
	failing := Task{
		Name: "failing",
		Run: func(context.Context) (int64, error) {
			return 0, errors.New("store unavailable")
		},
	}

	s, err := NewScheduler(bus, "", 5*time.Millisecond, recorder, failing, task)
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), lifecycle.StartService{Service: DefaultName}))
	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)

	require.NoError(t, s.Shutdown(context.Background()))
	require.False(t, s.IsRunning())
	require.Equal(t, int32(1), finals.Load())

	_, failures := recorder.get("failing")
	require.GreaterOrEqual(t, failures, 3)

	// No ticks after shutdown.
	stopped := ticks.Load()
	require.Never(t, func() bool { return ticks.Load() != stopped }, 30*time.Millisecond, 5*time.Millisecond)
}

func TestNewScheduler_RejectsNonPositiveInterval(t *testing.T) {
	bus := lifecycle.NewBus(1)
	t.Cleanup(bus.Close)

	_, err := NewScheduler(bus, "", 0, nil)
	require.Error(t, err)
}

func TestFlushSuppression_FinalDrainWritesPending(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	counter := observation.NewCounter(store, keylock.New(), observation.Config{
		BucketWidthMinutes: 1,
		SuppressionTTL:     time.Hour,
	}, observation.WithClock(func() time.Time { return now }))

	for range 4 {
		_, err := counter.RegisterFingerprint(ctx, "fp-1")
		require.NoError(t, err)
	}

	key := bucket.Key("fp-1", bucket.StartEpochMinutes(now, 1))
	count, err := store.BucketCount(ctx, key)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	task := FlushSuppression(counter)

	// Nothing has expired yet.
	n, err := task.Run(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = task.Final(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	count, err = store.BucketCount(ctx, key)
	require.NoError(t, err)
	require.Equal(t, int64(4), count)
}

func TestPurgeBuckets_UsesRetentionCutoff(t *testing.T) {
	now := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	cutoff := bucket.StartEpochMinutes(now.Add(-24*time.Hour), 1)

	store := storagemocks.NewObservationStore(t)
	store.EXPECT().PurgeBucketsBefore(mock.Anything, cutoff).Return(int64(12), nil).Once()

	task := PurgeBuckets(store, 24*time.Hour, func() time.Time { return now })
	n, err := task.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(12), n)
}
