package activity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/annerobin/therapy-booking/internal/store"
)

// Key is where the capped feed blob lives in the key-value store.
const Key = "activity"

// KVLog stores the feed as one JSON blob, newest entry first.
type KVLog struct {
	kv  store.Store
	mu  sync.Mutex
	now func() time.Time
}

func NewKVLog(kv store.Store) *KVLog {
	return &KVLog{kv: kv, now: time.Now}
}

func (l *KVLog) load(ctx context.Context) ([]Entry, error) {
	data, err := l.kv.Get(ctx, Key)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load activity: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode activity: %w", err)
	}
	return entries, nil
}

func (l *KVLog) Record(ctx context.Context, typ EntryType, message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load(ctx)
	if err != nil {
		return err
	}

	entries = append([]Entry{{
		ID:        uuid.NewString(),
		Type:      typ,
		Message:   message,
		Timestamp: l.now(),
	}}, entries...)

	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode activity: %w", err)
	}
	if err := l.kv.Put(ctx, Key, data); err != nil {
		return fmt.Errorf("save activity: %w", err)
	}
	return nil
}

func (l *KVLog) List(ctx context.Context) ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx)
}
