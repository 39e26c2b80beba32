package redis

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
)

const jobEventsChannel = "job_events"

type eventEnvelope struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// RedisEventPublisher mirrors job events across instances so every
// connected websocket client sees them no matter which instance ran the job.
type RedisEventPublisher struct {
	client *redis.Client
}

func NewRedisEventPublisher(client *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{client: client}
}

func (r *RedisEventPublisher) Publish(ctx context.Context, event string, payload interface{}) error {
	data, err := json.Marshal(eventEnvelope{Event: event, Payload: payload})
	if err != nil {
		return err
	}

	return r.client.Publish(ctx, jobEventsChannel, data).Err()
}
