// Package sweeper runs periodic maintenance: flushing coalesced observation
// counts and enforcing retention on durable state.
package sweeper

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aevon-lab/devicescout/internal/core/lifecycle"
)

// DefaultName is the lifecycle name of the sweeper.
const DefaultName = "sweeper"

const finalDrainTimeout = 30 * time.Second

// Task is one maintenance job. Run is called on every tick; Final, when set,
// replaces Run for the drain performed while stopping.
type Task struct {
	Name  string
	Run   func(ctx context.Context) (int64, error)
	Final func(ctx context.Context) (int64, error)
}

// Recorder observes task runs.
type Recorder interface {
	SweeperRun(task string, affected int64, err error)
}

// Scheduler runs its tasks on a fixed interval while running.
// It is stateless between ticks.
type Scheduler struct {
	*lifecycle.Controllable

	interval time.Duration
	tasks    []Task
	recorder Recorder

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler creates a stopped scheduler registered on bus under name.
func NewScheduler(bus *lifecycle.Bus, name string, interval time.Duration, recorder Recorder, tasks ...Task) (*Scheduler, error) {
	if interval <= 0 {
		return nil, errors.New("sweeper: interval must be positive")
	}
	if name == "" {
		name = DefaultName
	}
	s := &Scheduler{
		interval: interval,
		tasks:    tasks,
		recorder: recorder,
	}
	ctrl, err := lifecycle.NewControllable(name, bus, s)
	if err != nil {
		return nil, err
	}
	s.Controllable = ctrl
	return s, nil
}

// OnStart launches the tick loop. The loop runs until OnStop.
func (s *Scheduler) OnStart(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})

	s.mu.Lock()
	s.cancel, s.done = cancel, done
	s.mu.Unlock()

	go s.loop(runCtx, done)
	return nil
}

// OnStop cancels the loop and waits for its final drain.
func (s *Scheduler) OnStop(ctx context.Context) error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("[Sweeper] Starting maintenance scheduler", "interval", s.interval, "tasks", len(s.tasks))

	for {
		select {
		case <-ticker.C:
			s.RunOnce(ctx)
		case <-ctx.Done():
			slog.Info("[Sweeper] Stopping (context cancelled)")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), finalDrainTimeout)
			defer cancel()

			slog.Info("[Sweeper] Running final drain before shutdown...")
			s.drain(shutdownCtx)
			slog.Info("[Sweeper] Final drain complete")
			return
		}
	}
}

// RunOnce runs every task once. A failing task does not stop the others.
func (s *Scheduler) RunOnce(ctx context.Context) {
	for _, task := range s.tasks {
		if ctx.Err() != nil {
			slog.Info("[Sweeper] Run interrupted by context cancellation", "task", task.Name)
			return
		}
		s.runTask(ctx, task.Name, task.Run)
	}
}

func (s *Scheduler) drain(ctx context.Context) {
	for _, task := range s.tasks {
		run := task.Run
		if task.Final != nil {
			run = task.Final
		}
		s.runTask(ctx, task.Name, run)
	}
}

func (s *Scheduler) runTask(ctx context.Context, name string, run func(context.Context) (int64, error)) {
	affected, err := run(ctx)
	if s.recorder != nil {
		s.recorder.SweeperRun(name, affected, err)
	}
	if err != nil {
		slog.Error("[Sweeper] Task failed", "task", name, "error", err)
		return
	}
	if affected > 0 {
		slog.Debug("[Sweeper] Task completed", "task", name, "affected", affected)
	}
}
