package redisx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Webhook event dedup: dedup:webhook:{event_id} -> 1
const keyWebhookEvent = "dedup:webhook:%s"

var ttlDedup = 48 * time.Hour

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// Deduper tracks fully processed webhook event ids. Seen is a plain read so
// a failed run never claims its id; Mark records the id after the run
// succeeded.
type Deduper struct {
	rdb *redis.Client
}

func NewDeduper(rdb *redis.Client) *Deduper { return &Deduper{rdb: rdb} }

func (d *Deduper) Seen(ctx context.Context, eventID string) (bool, error) {
	n, err := d.rdb.Exists(ctx, fmt.Sprintf(keyWebhookEvent, eventID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (d *Deduper) Mark(ctx context.Context, eventID string) error {
	return d.rdb.Set(ctx, fmt.Sprintf(keyWebhookEvent, eventID), 1, ttlDedup).Err()
}
