package dedupe

import (
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyTTL = 24 * time.Hour

// Guard suppresses reprocessing of redelivered updates. Telegram delivers
// at-least-once, so the same update id can arrive twice when an ack is
// lost; marking ids in redis lets both ingestion modes skip the repeat.
//
// The guard is best-effort: with no redis configured, or with redis down,
// every update counts as unseen and gets processed.
type Guard struct {
	client *redis.Client
}

// New returns a Guard backed by redis at addr, or a disabled Guard when
// addr is empty.
func New(addr string) *Guard {
	if addr == "" {
		return &Guard{}
	}
	return &Guard{client: redis.NewClient(&redis.Options{Addr: addr})}
}

// Seen marks the update id and reports whether it was already marked.
func (g *Guard) Seen(ctx context.Context, updateID int) bool {
	if g == nil || g.client == nil {
		return false
	}

	key := fmt.Sprintf("coach:update:%d", updateID)
	fresh, err := g.client.SetNX(ctx, key, 1, keyTTL).Result()
	if err != nil {
		log.WarnContext(ctx, "dedupe check failed, processing anyway",
			log.Int("update_id", updateID),
			log.Any("err", err),
		)
		return false
	}
	return !fresh
}

func (g *Guard) Close() error {
	if g == nil || g.client == nil {
		return nil
	}
	return g.client.Close()
}
