package subscribers

import (
	"pulsehub/internal/adapters/ws"
	"pulsehub/internal/domain"
)

type EventFanout struct {
	hub *ws.Hub
}

func NewEventFanout(hub *ws.Hub) *EventFanout {
	return &EventFanout{hub: hub}
}

func (s *EventFanout) Handle(args ...any) {
	if len(args) == 0 {
		return
	}

	if env, ok := args[0].(*domain.Envelope); ok {
		s.hub.Broadcast(env)
	}
}
