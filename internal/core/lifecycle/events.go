// Package lifecycle drives service start/stop through the system event bus.
package lifecycle

import "github.com/aevon-lab/devicescout/internal/core/eventbus"

// Codes carried by SystemMessage.
const (
	CodeStarting = "service.starting"
	CodeStarted  = "service.started"
	CodeStopping = "service.stopping"
	CodeStopped  = "service.stopped"
)

// SystemEvent is the closed set of lifecycle events. Every variant is
// addressed to one service by name.
type SystemEvent interface {
	ServiceName() string
	systemEvent()
}

// StartService asks the named service to start.
type StartService struct{ Service string }

// StopService asks the named service to stop.
type StopService struct{ Service string }

// SystemMessage reports a lifecycle transition of the named service.
type SystemMessage struct {
	Service string
	Code    string
}

func (e StartService) ServiceName() string  { return e.Service }
func (e StopService) ServiceName() string   { return e.Service }
func (e SystemMessage) ServiceName() string { return e.Service }

func (StartService) systemEvent()  {}
func (StopService) systemEvent()   {}
func (SystemMessage) systemEvent() {}

// Bus carries SystemEvents.
type Bus = eventbus.Bus[SystemEvent]

func NewBus(capacity int) *Bus {
	return eventbus.New[SystemEvent](capacity)
}
