// Package subscribers
package subscribers

import (
	"pulsehub/internal/adapters/ws"
	"pulsehub/internal/event"
)

type EventBus interface {
	On(name string, fn event.Listener)
}

// Register attaches the websocket fan-out to every event name in the
// catalog. Names published outside the catalog still dispatch and are
// audited; they just never reach a socket.
func Register(bus EventBus, hub *ws.Hub, catalog []string) {
	fanout := NewEventFanout(hub)

	for _, name := range catalog {
		bus.On(name, fanout.Handle)
	}
}
