package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	v1 "github.com/aevon-lab/devicescout/internal/api/v1"
	coreerrors "github.com/aevon-lab/devicescout/internal/core/errors"
	"github.com/aevon-lab/devicescout/internal/core/lifecycle"
)

// DefaultSourceName is the lifecycle name of the inbound source.
const DefaultSourceName = "source"

// Source message outcomes reported to a SourceRecorder.
const (
	MessageProcessed = "processed"
	MessageRejected  = "rejected"
	MessageFailed    = "failed"
)

var errSubscriptionClosed = errors.New("subscription closed")

// Subscriber opens a message stream on channel. The closer ends the stream.
type Subscriber func(ctx context.Context, channel string) (<-chan *redis.Message, io.Closer, error)

// RedisSubscriber subscribes through a go-redis client and waits for the
// subscription to be confirmed.
func RedisSubscriber(client *redis.Client) Subscriber {
	return func(ctx context.Context, channel string) (<-chan *redis.Message, io.Closer, error) {
		ps := client.Subscribe(ctx, channel)
		if _, err := ps.Receive(ctx); err != nil {
			_ = ps.Close()
			return nil, nil, fmt.Errorf("subscribe %s: %w", channel, err)
		}
		return ps.Channel(), ps, nil
	}
}

// SourceRecorder observes how inbound messages were handled.
type SourceRecorder interface {
	SourceMessage(outcome string)
}

// SourceConfig configures the inbound source.
type SourceConfig struct {
	Name    string
	Channel string
	Workers int
}

// Source feeds observations published on a Redis channel into a Processor.
// It is started and stopped through the system event bus.
type Source struct {
	*lifecycle.Controllable

	subscribe Subscriber
	channel   string
	workers   int
	processor Processor
	recorder  SourceRecorder

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	closer io.Closer
}

func NewSource(bus *lifecycle.Bus, cfg SourceConfig, subscribe Subscriber, processor Processor, recorder SourceRecorder) (*Source, error) {
	if subscribe == nil || processor == nil {
		return nil, errors.New("ingestion: source needs a subscriber and a processor")
	}
	if cfg.Name == "" {
		cfg.Name = DefaultSourceName
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	s := &Source{
		subscribe: subscribe,
		channel:   cfg.Channel,
		workers:   cfg.Workers,
		processor: processor,
		recorder:  recorder,
	}
	ctrl, err := lifecycle.NewControllable(cfg.Name, bus, s)
	if err != nil {
		return nil, err
	}
	s.Controllable = ctrl
	return s, nil
}

// OnStart subscribes and launches the worker pool. The pool outlives ctx;
// it runs until OnStop.
func (s *Source) OnStart(ctx context.Context) error {
	messages, closer, err := s.subscribe(ctx, s.channel)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})

	s.mu.Lock()
	s.cancel, s.done, s.closer = cancel, done, closer
	s.mu.Unlock()

	go func() {
		if errors.Is(s.run(runCtx, messages, done), errSubscriptionClosed) {
			s.release(done)
		}
	}()

	slog.Info("[Source] Listening", "channel", s.channel, "workers", s.workers)
	return nil
}

// OnStop stops reading, lets in-flight messages finish and closes the subscription.
func (s *Source) OnStop(ctx context.Context) error {
	s.mu.Lock()
	cancel, done, closer := s.cancel, s.done, s.closer
	s.cancel, s.done, s.closer = nil, nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		err = fmt.Errorf("waiting for source workers: %w", ctx.Err())
	}
	if cerr := closer.Close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("close subscription: %w", cerr))
	}

	slog.Info("[Source] Stopped", "channel", s.channel)
	return err
}

func (s *Source) run(ctx context.Context, messages <-chan *redis.Message, done chan struct{}) error {
	defer close(done)

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan *redis.Message)

	g.Go(func() error {
		defer close(jobs)
		for {
			select {
			case <-gctx.Done():
				return nil
			case msg, ok := <-messages:
				if !ok {
					return errSubscriptionClosed
				}
				select {
				case jobs <- msg:
				case <-gctx.Done():
					return nil
				}
			}
		}
	})

	for range s.workers {
		g.Go(func() error {
			for msg := range jobs {
				// In-flight messages finish even when the source is stopping.
				s.handle(context.WithoutCancel(gctx), msg)
			}
			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		slog.Warn("[Source] Reader exited", "channel", s.channel, "error", err)
	}
	return err
}

// release stops the source after its subscription ended without OnStop, so
// that the next StartService subscribes again. A run that was already
// replaced by a stop or restart is left alone.
func (s *Source) release(done chan struct{}) {
	err := s.StopIf(context.Background(), func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.done == done
	})
	if err != nil {
		slog.Warn("[Source] Failed to release closed subscription", "channel", s.channel, "error", err)
	}
}

func (s *Source) handle(ctx context.Context, msg *redis.Message) {
	var obs v1.Observation
	if err := json.Unmarshal([]byte(msg.Payload), &obs); err != nil {
		s.record(MessageRejected)
		slog.Warn("[Source] Undecodable message", "channel", msg.Channel, "error", err)
		return
	}

	if _, err := s.processor.Process(ctx, "redis:"+msg.Channel, &obs); err != nil {
		if coreerrors.KindOf(err) == coreerrors.KindInvalid {
			s.record(MessageRejected)
		} else {
			s.record(MessageFailed)
		}
		slog.Warn("[Source] Failed to process observation", "model", obs.Model, "device_id", obs.ID, "error", err)
		return
	}
	s.record(MessageProcessed)
}

func (s *Source) record(outcome string) {
	if s.recorder != nil {
		s.recorder.SourceMessage(outcome)
	}
}
