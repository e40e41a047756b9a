package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type modelKey struct {
	Model       string
	Fingerprint string
}

func (k modelKey) HasMinimumLoadingCriteria() bool { return k.Fingerprint != "" }

type countingLoader struct {
	calls atomic.Int32
	value string
	ok    bool
	err   error
}

func (l *countingLoader) load(_ context.Context, _ modelKey) (string, bool, error) {
	l.calls.Add(1)
	return l.value, l.ok, l.err
}

type failingStore struct{}

func (failingStore) Get(context.Context, modelKey) (string, bool, error) {
	return "", false, errors.New("redis: connection refused")
}
func (failingStore) Put(context.Context, modelKey, string, time.Duration) error {
	return errors.New("redis: connection refused")
}
func (failingStore) Invalidate(context.Context, modelKey) error {
	return errors.New("redis: connection refused")
}

type recorded struct {
	mu      sync.Mutex
	sources []string
}

func (r *recorded) CacheResult(_, source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append(r.sources, source)
}

func newTiered(loader, fallback LoadFunc[modelKey, string]) (*Tiered[modelKey, string], *MemoryLayer[modelKey, string], *MemoryStore[modelKey, string]) {
	l1 := NewMemoryLayer[modelKey, string](time.Minute)
	l2 := NewMemoryStore[modelKey, string](time.Minute)
	return NewTiered(Options[modelKey, string]{
		Name:     "test",
		L1:       l1,
		L2:       l2,
		Loader:   loader,
		Fallback: fallback,
		L1TTL:    time.Minute,
		L2TTL:    time.Hour,
	}), l1, l2
}

func TestTiered_LoaderCalledOnceWithinTTL(t *testing.T) {
	loader := &countingLoader{value: "record-1", ok: true}
	c, _, _ := newTiered(loader.load, nil)
	key := modelKey{Model: "sensor-A", Fingerprint: "abc"}

	for i := 0; i < 10; i++ {
		v, ok := c.Get(context.Background(), key)
		require.True(t, ok)
		require.Equal(t, "record-1", v)
	}
	require.Equal(t, int32(1), loader.calls.Load())
}

func TestTiered_LoadPopulatesBothLayers(t *testing.T) {
	loader := &countingLoader{value: "record-1", ok: true}
	c, l1, l2 := newTiered(loader.load, nil)
	key := modelKey{Model: "sensor-A", Fingerprint: "abc"}

	_, ok := c.Get(context.Background(), key)
	require.True(t, ok)

	v, ok := l1.Get(key)
	require.True(t, ok)
	require.Equal(t, "record-1", v)

	v, ok, err := l2.Get(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "record-1", v)
}

func TestTiered_DurableHitBackfillsFrontLayer(t *testing.T) {
	loader := &countingLoader{value: "from-loader", ok: true}
	rec := &recorded{}
	l1 := NewMemoryLayer[modelKey, string](time.Minute)
	l2 := NewMemoryStore[modelKey, string](time.Minute)
	c := NewTiered(Options[modelKey, string]{L1: l1, L2: l2, Loader: loader.load, L1TTL: time.Minute, L2TTL: time.Hour, Recorder: rec})
	key := modelKey{Model: "sensor-A", Fingerprint: "abc"}

	require.NoError(t, l2.Put(context.Background(), key, "from-l2", time.Hour))

	v, ok := c.Get(context.Background(), key)
	require.True(t, ok)
	require.Equal(t, "from-l2", v)

	v, ok = l1.Get(key)
	require.True(t, ok)
	require.Equal(t, "from-l2", v)

	_, _ = c.Get(context.Background(), key)
	require.Equal(t, int32(0), loader.calls.Load())
	require.Equal(t, []string{SourceL2, SourceL1}, rec.sources)
}

func TestTiered_IneligibleKeySkipsLoader(t *testing.T) {
	loader := &countingLoader{value: "from-loader", ok: true}
	fallback := &countingLoader{value: "from-fallback", ok: true}
	c, _, l2 := newTiered(loader.load, fallback.load)
	key := modelKey{Model: "sensor-A"}

	v, ok := c.Get(context.Background(), key)
	require.True(t, ok)
	require.Equal(t, "from-fallback", v)
	require.Equal(t, int32(0), loader.calls.Load())
	require.Equal(t, int32(1), fallback.calls.Load())

	v, ok, err := l2.Get(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "from-fallback", v)
}

func TestTiered_ProducerFailuresAreSwallowed(t *testing.T) {
	tests := []struct {
		name      string
		loader    *countingLoader
		fallback  *countingLoader
		wantValue string
		wantOK    bool
	}{
		{
			name:      "loader error falls through to fallback",
			loader:    &countingLoader{err: errors.New("store timeout")},
			fallback:  &countingLoader{value: "fb", ok: true},
			wantValue: "fb",
			wantOK:    true,
		},
		{
			name:     "both fail yields absent",
			loader:   &countingLoader{err: errors.New("store timeout")},
			fallback: &countingLoader{err: errors.New("boom")},
			wantOK:   false,
		},
		{
			name:     "loader produces nothing and no value from fallback",
			loader:   &countingLoader{ok: false},
			fallback: &countingLoader{ok: false},
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTiered(tt.loader.load, tt.fallback.load)
			v, ok := c.Get(context.Background(), modelKey{Model: "m", Fingerprint: "fp"})
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.wantValue, v)
		})
	}
}

func TestTiered_LoadReportsProducerFailure(t *testing.T) {
	key := modelKey{Model: "m", Fingerprint: "fp"}

	failing := &countingLoader{err: errors.New("store timeout")}
	c, _, _ := newTiered(failing.load, nil)
	_, ok, err := c.Load(context.Background(), key)
	require.False(t, ok)
	require.ErrorContains(t, err, "store timeout")
	require.Equal(t, int32(1), failing.calls.Load())

	empty := &countingLoader{}
	c, _, _ = newTiered(empty.load, nil)
	_, ok, err = c.Load(context.Background(), key)
	require.False(t, ok)
	require.NoError(t, err)

	rescued := &countingLoader{value: "fb", ok: true}
	c, _, _ = newTiered(failing.load, rescued.load)
	v, ok, err := c.Load(context.Background(), key)
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, "fb", v)
}

func TestTiered_PeekReadsFrontLayerOnly(t *testing.T) {
	loader := &countingLoader{value: "v", ok: true}
	c, _, l2 := newTiered(loader.load, nil)
	key := modelKey{Model: "m", Fingerprint: "fp"}

	require.NoError(t, l2.Put(context.Background(), key, "durable", time.Hour))
	_, ok := c.Peek(key)
	require.False(t, ok)
	require.Zero(t, loader.calls.Load())

	c.Put(context.Background(), key, "v")
	v, ok := c.Peek(key)
	require.True(t, ok)
	require.Equal(t, "v", v)
}

func TestTiered_LoaderPanicIsSwallowed(t *testing.T) {
	c, _, _ := newTiered(func(context.Context, modelKey) (string, bool, error) {
		panic("nil map")
	}, nil)

	v, ok := c.Get(context.Background(), modelKey{Model: "m", Fingerprint: "fp"})
	require.False(t, ok)
	require.Empty(t, v)
}

func TestTiered_ZeroTTLIsImmediatelyAbsent(t *testing.T) {
	c, _, _ := newTiered(nil, nil)
	key := modelKey{Model: "m", Fingerprint: "fp"}

	c.PutWithTTL(context.Background(), key, "v", 0)
	_, ok := c.Get(context.Background(), key)
	require.False(t, ok)
}

func TestTiered_PutWritesThroughAndInvalidateRemoves(t *testing.T) {
	c, l1, l2 := newTiered(nil, nil)
	key := modelKey{Model: "m", Fingerprint: "fp"}

	c.Put(context.Background(), key, "v")
	_, ok := l1.Get(key)
	require.True(t, ok)
	_, ok, _ = l2.Get(context.Background(), key)
	require.True(t, ok)

	c.Invalidate(context.Background(), key)
	_, ok = l1.Get(key)
	require.False(t, ok)
	_, ok, _ = l2.Get(context.Background(), key)
	require.False(t, ok)
	_, ok = c.Get(context.Background(), key)
	require.False(t, ok)
}

func TestTiered_DurableFailureDegradesToLoader(t *testing.T) {
	loader := &countingLoader{value: "v", ok: true}
	c := NewTiered(Options[modelKey, string]{
		L1:     NewMemoryLayer[modelKey, string](time.Minute),
		L2:     failingStore{},
		Loader: loader.load,
		L1TTL:  time.Minute,
		L2TTL:  time.Hour,
	})

	v, ok := c.Get(context.Background(), modelKey{Model: "m", Fingerprint: "fp"})
	require.True(t, ok)
	require.Equal(t, "v", v)
	require.Equal(t, int32(1), loader.calls.Load())
}

func TestTiered_ConcurrentMissesCoalesce(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	c, _, _ := newTiered(func(context.Context, modelKey) (string, bool, error) {
		calls.Add(1)
		<-release
		return "v", true, nil
	}, nil)
	key := modelKey{Model: "m", Fingerprint: "fp"}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, ok := c.Get(context.Background(), key)
			require.True(t, ok)
			require.Equal(t, "v", v)
		}()
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()
	require.Equal(t, int32(1), calls.Load())
}

func TestKeyString(t *testing.T) {
	require.Equal(t, "abc", KeyString("abc"))
	require.Equal(t, "42", KeyString(42))
	require.Equal(t, "{m fp}", KeyString(modelKey{Model: "m", Fingerprint: "fp"}))
}
