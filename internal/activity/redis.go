package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKey = "activity:feed"

// RedisLog keeps the feed in a Redis list. LPUSH + LTRIM is the natural
// capped most-recent-first structure, so no read-modify-write is needed.
type RedisLog struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisLog(client *redis.Client) *RedisLog {
	return &RedisLog{client: client, now: time.Now}
}

func (l *RedisLog) Record(ctx context.Context, typ EntryType, message string) error {
	entry := Entry{
		ID:        uuid.NewString(),
		Type:      typ,
		Message:   message,
		Timestamp: l.now(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode activity entry: %w", err)
	}

	pipe := l.client.TxPipeline()
	pipe.LPush(ctx, redisKey, data)
	pipe.LTrim(ctx, redisKey, 0, MaxEntries-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}

func (l *RedisLog) List(ctx context.Context) ([]Entry, error) {
	raw, err := l.client.LRange(ctx, redisKey, 0, MaxEntries-1).Result()
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("decode activity entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
