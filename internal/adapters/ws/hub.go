// Package ws
package ws

import (
	"context"
	"encoding/json"

	"pulsehub/internal/domain"
	"pulsehub/internal/logger"
)

type Hub struct {
	ctx    context.Context
	cancel context.CancelFunc

	clients  map[*Client]bool
	channels map[string]map[*Client]bool

	register    chan *Client
	unregister  chan *Client
	subscribe   chan *Subscription
	unsubscribe chan *Subscription

	broadcast chan *domain.Envelope

	log logger.Logger
}

type Subscription struct {
	client *Client
	event  string
}

func NewHub(parent context.Context, log logger.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)

	return &Hub{
		ctx:    ctx,
		cancel: cancel,

		clients:  make(map[*Client]bool),
		channels: make(map[string]map[*Client]bool),

		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan *Subscription),
		unsubscribe: make(chan *Subscription),

		broadcast: make(chan *domain.Envelope, 256),

		log: log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			h.log.Info("ws: hub shutting down")
			for client := range h.clients {
				close(client.send)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.log.Info("ws: client registered", "id", client.ID, "total_clients", len(h.clients))

		case client := <-h.unregister:
			if !h.clients[client] {
				continue
			}

			h.removeClient(client)
			h.log.Info("ws: client unregistered", "id", client.ID, "total_clients", len(h.clients))

		case sub := <-h.subscribe:
			if h.channels[sub.event] == nil {
				h.channels[sub.event] = make(map[*Client]bool)
			}
			if !h.channels[sub.event][sub.client] {
				h.channels[sub.event][sub.client] = true
				sub.client.subCount++
			}
			h.log.Debug("ws: client subscribed", "client_id", sub.client.ID, "event", sub.event)

		case sub := <-h.unsubscribe:
			if subs, ok := h.channels[sub.event]; ok {
				if _, subscribed := subs[sub.client]; subscribed {
					delete(subs, sub.client)
					sub.client.subCount--
					if len(subs) == 0 {
						delete(h.channels, sub.event)
					}
					h.log.Debug("ws: client unsubscribed", "client_id", sub.client.ID, "event", sub.event)
				}
			}

		case env := <-h.broadcast:
			h.fanOut(env)
		}
	}
}

func (h *Hub) Stop() {
	h.cancel()
}

// Broadcast hands an envelope to the hub goroutine for fan-out. Called
// from registry dispatch, so it must not block: a full hub drops the
// envelope rather than stall the emitting pass.
func (h *Hub) Broadcast(env *domain.Envelope) {
	select {
	case h.broadcast <- env:
	default:
		h.log.Warn("ws: broadcast queue full, envelope dropped", "event", env.Name)
	}
}

// fanOut delivers env to every client subscribed to its name. A client
// with no subscriptions at all receives the full stream.
func (h *Hub) fanOut(env *domain.Envelope) {
	message, err := json.Marshal(env)
	if err != nil {
		h.log.Error("ws: failed to marshal envelope", "error", err)
		return
	}

	subs := h.channels[env.Name]

	for client := range h.clients {
		if client.subCount > 0 && !subs[client] {
			continue
		}

		select {
		case client.send <- message:
		default:
			h.log.Warn("ws: client channel full, force unregister", "id", client.ID)
			h.removeClient(client)
		}
	}
}

func (h *Hub) removeClient(client *Client) {
	delete(h.clients, client)
	close(client.send)

	for event, subs := range h.channels {
		if _, subscribed := subs[client]; subscribed {
			delete(subs, client)
			if len(subs) == 0 {
				delete(h.channels, event)
			}
		}
	}
}
