package domain

const (
	WsActionSubscribe   = "subscribe"
	WsActionUnsubscribe = "unsubscribe"
)

// WsClientMessage is the only inbound frame a websocket client may send:
// a request to follow or stop following a set of event names. An empty
// subscription receives every dispatched event.
type WsClientMessage struct {
	Action string   `json:"action"`
	Events []string `json:"events"`
}
