package ingestion

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	v1 "github.com/aevon-lab/devicescout/internal/api/v1"
	coreerrors "github.com/aevon-lab/devicescout/internal/core/errors"
	"github.com/aevon-lab/devicescout/internal/core/lifecycle"
	ingestionmocks "github.com/aevon-lab/devicescout/internal/mocks/ingestion"
)

type fakeSubscription struct {
	messages chan *redis.Message
	closed   atomic.Bool
	calls    atomic.Int32
	err      error
}

func newFakeSubscription() *fakeSubscription {
	return &fakeSubscription{messages: make(chan *redis.Message, 16)}
}

func (f *fakeSubscription) subscribe(_ context.Context, _ string) (<-chan *redis.Message, io.Closer, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.messages, f, nil
}

// drop ends the current stream the way a lost connection does.
func (f *fakeSubscription) drop() {
	close(f.messages)
}

func (f *fakeSubscription) reopen() {
	f.messages = make(chan *redis.Message, 16)
}

func (f *fakeSubscription) Close() error {
	f.closed.Store(true)
	return nil
}

type sourceOutcomes struct {
	mu     sync.Mutex
	counts map[string]int
}

func (o *sourceOutcomes) SourceMessage(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.counts == nil {
		o.counts = make(map[string]int)
	}
	o.counts[outcome]++
}

func (o *sourceOutcomes) get(outcome string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.counts[outcome]
}

func TestSource_StartedAndStoppedByBusEvents(t *testing.T) {
	bus := lifecycle.NewBus(16)
	t.Cleanup(bus.Close)

	sub := newFakeSubscription()
	outcomes := &sourceOutcomes{}
	processor := ingestionmocks.NewProcessor(t)
	processor.EXPECT().
		Process(mock.Anything, "redis:devices", mock.MatchedBy(func(o *v1.Observation) bool {
			return o.Model == "sensor-A" && o.ID == "D1"
		})).
		Return(v1.IngestResult{Fingerprint: "fp-1", BucketCount: 1}, nil).
		Times(2)
	processor.EXPECT().
		Process(mock.Anything, "redis:devices", mock.MatchedBy(func(o *v1.Observation) bool {
			return o.ID == ""
		})).
		Return(v1.IngestResult{}, coreerrors.Invalid("id is required")).
		Once()

	src, err := NewSource(bus, SourceConfig{Channel: "devices", Workers: 3}, sub.subscribe, processor, outcomes)
	require.NoError(t, err)
	require.False(t, src.IsRunning())

	require.NoError(t, bus.Publish(context.Background(), lifecycle.StartService{Service: DefaultSourceName}))
	require.Eventually(t, src.IsRunning, time.Second, 5*time.Millisecond)

	sub.messages <- &redis.Message{Channel: "devices", Payload: `{"model":"sensor-A","id":"D1","temperature_C":21.5}`}
	sub.messages <- &redis.Message{Channel: "devices", Payload: `{"model":"sensor-A","id":"D1","temperature_C":21.7}`}
	sub.messages <- &redis.Message{Channel: "devices", Payload: `not json`}
	sub.messages <- &redis.Message{Channel: "devices", Payload: `{"model":"sensor-A"}`}

	require.Eventually(t, func() bool {
		return outcomes.get(MessageProcessed) == 2 && outcomes.get(MessageRejected) == 2
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, bus.Publish(context.Background(), lifecycle.StopService{Service: DefaultSourceName}))
	require.Eventually(t, func() bool { return !src.IsRunning() && sub.closed.Load() }, time.Second, 5*time.Millisecond)

	require.NoError(t, src.Shutdown(context.Background()))
}

func TestSource_StartFailureLeavesSourceStopped(t *testing.T) {
	bus := lifecycle.NewBus(16)
	t.Cleanup(bus.Close)

	sub := newFakeSubscription()
	sub.err = errors.New("dial tcp: connection refused")

	src, err := NewSource(bus, SourceConfig{Name: "redis-source", Channel: "devices"}, sub.subscribe, ingestionmocks.NewProcessor(t), nil)
	require.NoError(t, err)

	err = src.Start(context.Background())
	require.Error(t, err)
	require.False(t, src.IsRunning())
	require.Equal(t, int32(1), sub.calls.Load())

	// Stopping a source that never started is a no-op.
	require.NoError(t, src.Shutdown(context.Background()))
}

func TestSource_RestartResubscribes(t *testing.T) {
	bus := lifecycle.NewBus(16)
	t.Cleanup(bus.Close)

	sub := newFakeSubscription()
	src, err := NewSource(bus, SourceConfig{Channel: "devices"}, sub.subscribe, ingestionmocks.NewProcessor(t), nil)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, src.Start(ctx))
	require.NoError(t, src.Start(ctx))
	require.Equal(t, int32(1), sub.calls.Load())

	require.NoError(t, src.Stop(ctx))
	require.True(t, sub.closed.Load())

	sub.closed.Store(false)
	require.NoError(t, src.Start(ctx))
	require.Equal(t, int32(2), sub.calls.Load())
	require.NoError(t, src.Shutdown(ctx))
	require.True(t, sub.closed.Load())
}

func TestSource_ClosedSubscriptionStopsSource(t *testing.T) {
	bus := lifecycle.NewBus(16)
	t.Cleanup(bus.Close)

	sub := newFakeSubscription()
	src, err := NewSource(bus, SourceConfig{Channel: "devices", Workers: 2}, sub.subscribe, ingestionmocks.NewProcessor(t), nil)
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), lifecycle.StartService{Service: DefaultSourceName}))
	require.Eventually(t, src.IsRunning, time.Second, 5*time.Millisecond)

	sub.drop()
	require.Eventually(t, func() bool { return !src.IsRunning() && sub.closed.Load() }, time.Second, 5*time.Millisecond)

	sub.reopen()
	require.NoError(t, bus.Publish(context.Background(), lifecycle.StartService{Service: DefaultSourceName}))
	require.Eventually(t, func() bool { return src.IsRunning() && sub.calls.Load() == 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, src.Shutdown(context.Background()))
}
