package websocket

import (
	"context"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
)

type statusMessage struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// StatusBroadcaster fans job events out to every websocket subscriber.
// It keeps no history; listeners that connect after an event fired miss it.
type StatusBroadcaster struct {
	connManager domain.ConnectionManager
}

func NewStatusBroadcaster(connManager domain.ConnectionManager) *StatusBroadcaster {
	return &StatusBroadcaster{connManager: connManager}
}

func (b *StatusBroadcaster) Publish(ctx context.Context, event string, payload interface{}) error {
	return b.connManager.Broadcast(statusMessage{Event: event, Payload: payload})
}
