package services

import (
	"context"
	"encoding/json"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/logger"
)

// StatusEventListener consumes the cross-instance job-event channel and
// rebroadcasts every event to the local websocket hub. Events published by
// this instance come back through the same channel, so the hub hears each
// event exactly once regardless of which instance ran the job.
type StatusEventListener struct {
	local domain.EventPublisher
	log   logger.Logger
}

func NewStatusEventListener(local domain.EventPublisher, log logger.Logger) *StatusEventListener {
	return &StatusEventListener{
		local: local,
		log:   log,
	}
}

func (el *StatusEventListener) Start(ctx context.Context, subscriber domain.EventSubscriber) error {
	el.log.Info("Starting status event listener")
	return subscriber.SubscribeToJobEvents(ctx, el.handleEvent)
}

func (el *StatusEventListener) handleEvent(event string, payload []byte) error {
	el.log.Debug("Rebroadcasting job event", "event", event)
	return el.local.Publish(context.Background(), event, json.RawMessage(payload))
}
