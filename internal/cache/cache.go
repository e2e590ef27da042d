// Package cache holds the Redis client used to queue room action
// records for the historian consumer. The queue is fire-and-forget:
// gameplay never blocks on Redis, and a nil client disables history
// entirely.
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Rdb is the shared Redis client. Nil when history is disabled.
var Rdb *redis.Client

// actionQueueKey is the list the historian consumer drains.
const actionQueueKey = "room:actions"

// RoomActionRecord is one entry in the per-room action history.
type RoomActionRecord struct {
	RoomID        string                 `json:"roomId"`
	ActionIndex   int                    `json:"actionIndex"`
	ActorPlayerID string                 `json:"actorPlayerId,omitempty"`
	ActionType    string                 `json:"actionType"`
	ActionPayload map[string]interface{} `json:"actionPayload,omitempty"`
	Timestamp     int64                  `json:"timestamp"`
}

// InitRedis connects the shared client using a redis:// URL and verifies
// the connection with a ping. An empty URL leaves history disabled.
func InitRedis(ctx context.Context, url string) error {
	if url == "" {
		logrus.Info("cache: REDIS_URL not set, action history disabled")
		return nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return fmt.Errorf("cache: parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("cache: ping: %w", err)
	}
	Rdb = client
	logrus.WithField("addr", opts.Addr).Info("cache: redis connected")
	return nil
}

// PublishRoomAction pushes a record onto the historian queue. Callers
// must check Rdb for nil first.
func PublishRoomAction(ctx context.Context, rec RoomActionRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("cache: marshal action record: %w", err)
	}
	if err := Rdb.RPush(ctx, actionQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("cache: rpush %s: %w", actionQueueKey, err)
	}
	return nil
}

// Close shuts the shared client down. Safe to call when disabled.
func Close() error {
	if Rdb == nil {
		return nil
	}
	err := Rdb.Close()
	Rdb = nil
	return err
}
