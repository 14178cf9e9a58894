// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrInvalidRecord is returned by Pop when a queued entry is not a MatchActionRecord.
var ErrInvalidRecord = errors.New("invalid action record")

// DefaultQueueName is the Redis list (queue) name for match action logs.
const DefaultQueueName = "cinquillo_actions"

// MatchActionRecord is one entry of a match's action log as consumed by the historian.
type MatchActionRecord struct {
	MatchID       uuid.UUID              `json:"match_id"`
	ActionIndex   int                    `json:"action_index"`
	ActorID       uuid.UUID              `json:"actor_id"`
	ActionType    string                 `json:"action_type"`
	ActionPayload map[string]interface{} `json:"action_payload"`
	Timestamp     int64                  `json:"timestamp"`
}

// Journal pushes match actions onto a Redis list.
type Journal struct {
	rdb   *redis.Client
	queue string
}

// ConnectRedis opens a client for addr and pings it. db selects the Redis logical database.
func ConnectRedis(ctx context.Context, addr string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// NewJournal wraps an existing client. An empty queue name falls back to DefaultQueueName.
func NewJournal(rdb *redis.Client, queue string) *Journal {
	if queue == "" {
		queue = DefaultQueueName
	}
	return &Journal{rdb: rdb, queue: queue}
}

// Queue returns the list the journal writes to.
func (j *Journal) Queue() string { return j.queue }

// PublishMatchAction serializes the record to JSON and appends it to the queue.
func (j *Journal) PublishMatchAction(ctx context.Context, record MatchActionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal MatchActionRecord: %w", err)
	}
	if err := j.rdb.RPush(ctx, j.queue, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", j.queue, err)
	}
	return nil
}

// Pop blocks for up to timeout waiting for the oldest queued record. It returns nil and no
// error when the timeout expires with the queue still empty.
func (j *Journal) Pop(ctx context.Context, timeout time.Duration) (*MatchActionRecord, error) {
	res, err := j.rdb.BLPop(ctx, timeout, j.queue).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("BLPop %s: %w", j.queue, err)
	}
	// res[0] is the queue name and res[1] the payload.
	if len(res) < 2 {
		return nil, nil
	}

	var record MatchActionRecord
	if err := json.Unmarshal([]byte(res[1]), &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return &record, nil
}

// Close releases the underlying client.
func (j *Journal) Close() error {
	return j.rdb.Close()
}
