package leader

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const leaderKey = "pharmacy_scheduler_leader"

// RedisLeaderElection gates the scheduled job triggers: only the leader
// instance fires cron callbacks, so a deployment with several replicas
// runs each schedule once. Manual triggers are not gated.
type RedisLeaderElection struct {
	client *redis.Client
	ttl    time.Duration

	mu            sync.Mutex
	stopHeartbeat chan struct{}
}

func NewRedisLeaderElection(client *redis.Client, ttl time.Duration) *RedisLeaderElection {
	return &RedisLeaderElection{
		client: client,
		ttl:    ttl,
	}
}

// BecomeLeader attempts to claim leadership. On success a heartbeat
// goroutine keeps the key alive until leadership is lost or released.
func (r *RedisLeaderElection) BecomeLeader(ctx context.Context, instanceID string) (bool, error) {
	acquired, err := r.client.SetNX(ctx, leaderKey, instanceID, r.ttl).Result()
	if err != nil {
		return false, err
	}

	if acquired {
		r.mu.Lock()
		if r.stopHeartbeat == nil {
			stop := make(chan struct{})
			r.stopHeartbeat = stop
			go r.maintainLeadership(instanceID, stop)
		}
		r.mu.Unlock()
	}

	return acquired, nil
}

func (r *RedisLeaderElection) IsLeader(ctx context.Context, instanceID string) (bool, error) {
	currentLeader, err := r.client.Get(ctx, leaderKey).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}

	return currentLeader == instanceID, nil
}

// ReleaseLeadership stops the heartbeat and deletes the key, but only if
// this instance still holds it.
func (r *RedisLeaderElection) ReleaseLeadership(ctx context.Context, instanceID string) error {
	r.cancelHeartbeat()

	luaScript := `
        if redis.call("GET", KEYS[1]) == ARGV[1] then
            return redis.call("DEL", KEYS[1])
        else
            return 0
        end
    `

	_, err := r.client.Eval(ctx, luaScript, []string{leaderKey}, instanceID).Result()
	return err
}

// cancelHeartbeat signals the heartbeat goroutine to exit. Safe to call
// repeatedly and with no heartbeat running.
func (r *RedisLeaderElection) cancelHeartbeat() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopHeartbeat != nil {
		close(r.stopHeartbeat)
		r.stopHeartbeat = nil
	}
}

// maintainLeadership refreshes the key TTL at a third of its lifetime
// until the stop channel closes or a refresh shows the key is gone.
func (r *RedisLeaderElection) maintainLeadership(instanceID string, stop chan struct{}) {
	ticker := time.NewTicker(r.ttl / 3)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !r.refreshLease(instanceID) {
				// Lost the key. Clear our channel so a later BecomeLeader
				// can start a fresh heartbeat, unless release already did.
				r.mu.Lock()
				if r.stopHeartbeat == stop {
					r.stopHeartbeat = nil
				}
				r.mu.Unlock()
				return
			}
		}
	}
}

// refreshLease extends the TTL if this instance still owns the key.
func (r *RedisLeaderElection) refreshLease(instanceID string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	luaScript := `
        if redis.call("GET", KEYS[1]) == ARGV[1] then
            return redis.call("EXPIRE", KEYS[1], ARGV[2])
        else
            return 0
        end
    `

	result, err := r.client.Eval(ctx, luaScript, []string{leaderKey},
		instanceID, int(r.ttl.Seconds())).Result()
	if err != nil {
		return false
	}

	extended, ok := result.(int64)
	return ok && extended == 1
}
