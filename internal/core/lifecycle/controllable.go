package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/aevon-lab/devicescout/internal/core/eventbus"
)

// Hooks are invoked between the "-ing" and "-ed" lifecycle messages.
type Hooks interface {
	OnStart(ctx context.Context) error
	OnStop(ctx context.Context) error
}

// HookFuncs adapts plain functions to Hooks. Nil functions are no-ops.
type HookFuncs struct {
	Start func(ctx context.Context) error
	Stop  func(ctx context.Context) error
}

func (h HookFuncs) OnStart(ctx context.Context) error {
	if h.Start == nil {
		return nil
	}
	return h.Start(ctx)
}

func (h HookFuncs) OnStop(ctx context.Context) error {
	if h.Stop == nil {
		return nil
	}
	return h.Stop(ctx)
}

// Controllable is a stopped/running lifecycle driven by StartService and
// StopService events addressed to its name.
type Controllable struct {
	name    string
	bus     *Bus
	hooks   Hooks
	running atomic.Bool
	mu      sync.Mutex // serializes transitions
	sub     *eventbus.Subscription[SystemEvent]
	once    sync.Once
}

// NewControllable creates a stopped service and subscribes it to the bus.
func NewControllable(name string, bus *Bus, hooks Hooks) (*Controllable, error) {
	if hooks == nil {
		hooks = HookFuncs{}
	}
	c := &Controllable{name: name, bus: bus, hooks: hooks}

	sub, err := bus.SubscribeFunc(
		func(ev SystemEvent) bool {
			switch ev.(type) {
			case StartService, StopService:
				return ev.ServiceName() == name
			}
			return false
		},
		c.handle,
	)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", name, err)
	}
	c.sub = sub
	return c, nil
}

func (c *Controllable) Name() string { return c.name }

func (c *Controllable) IsRunning() bool { return c.running.Load() }

// Start moves a stopped service to running. It is a no-op when already running.
// A failing start hook leaves the service stopped.
func (c *Controllable) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running.CompareAndSwap(false, true) {
		return nil
	}
	c.message(ctx, CodeStarting)
	if err := c.hooks.OnStart(ctx); err != nil {
		c.running.Store(false)
		return fmt.Errorf("start %s: %w", c.name, err)
	}
	c.message(ctx, CodeStarted)
	return nil
}

// Stop moves a running service to stopped. It is a no-op when already stopped.
func (c *Controllable) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopLocked(ctx)
}

// StopIf stops the service only if cond holds. cond runs with transitions
// serialized, so it observes the state left by the last OnStart or OnStop.
// Used by services whose work ended on its own.
func (c *Controllable) StopIf(ctx context.Context, cond func() bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !cond() {
		return nil
	}
	return c.stopLocked(ctx)
}

func (c *Controllable) stopLocked(ctx context.Context) error {
	if !c.running.CompareAndSwap(true, false) {
		return nil
	}
	c.message(ctx, CodeStopping)
	if err := c.hooks.OnStop(ctx); err != nil {
		return fmt.Errorf("stop %s: %w", c.name, err)
	}
	c.message(ctx, CodeStopped)
	return nil
}

// Shutdown stops the service and permanently detaches it from the bus.
func (c *Controllable) Shutdown(ctx context.Context) error {
	err := c.Stop(ctx)
	c.once.Do(c.sub.Cancel)
	return err
}

func (c *Controllable) handle(ctx context.Context, ev SystemEvent) {
	var err error
	switch ev.(type) {
	case StartService:
		err = c.Start(ctx)
	case StopService:
		err = c.Stop(ctx)
	}
	if err != nil {
		slog.Error("Lifecycle transition failed", "service", c.name, "error", err)
	}
}

func (c *Controllable) message(ctx context.Context, code string) {
	if err := c.bus.Publish(ctx, SystemMessage{Service: c.name, Code: code}); err != nil {
		slog.Debug("System message dropped", "service", c.name, "code", code, "error", err)
	}
}
