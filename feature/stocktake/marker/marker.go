package marker

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Marker flags tools as recently corrected for operator feedback.
type Marker interface {
	Mark(ctx context.Context, sessionID, toolID string) error
	Recent(ctx context.Context, sessionID string) ([]string, error)
}

// Redis keeps one sorted set per session; a member's score is the unix
// millisecond at which its mark expires.
type Redis struct {
	client redis.Cmdable
	ttl    time.Duration
	now    func() time.Time
}

// NewRedis creates a Redis-backed marker.
func NewRedis(client redis.Cmdable, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Redis{client: client, ttl: ttl, now: time.Now}
}

func key(sessionID string) string {
	return "stocktake:recent:" + sessionID
}

// Mark flags toolID in sessionID until the TTL elapses.
func (m *Redis) Mark(ctx context.Context, sessionID, toolID string) error {
	expires := m.now().Add(m.ttl).UnixMilli()
	k := key(sessionID)

	_, err := m.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.ZAdd(ctx, k, redis.Z{Score: float64(expires), Member: toolID})
		p.Expire(ctx, k, m.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("marker: mark %s/%s: %w", sessionID, toolID, err)
	}
	return nil
}

// Recent returns the tools of sessionID whose mark has not expired.
func (m *Redis) Recent(ctx context.Context, sessionID string) ([]string, error) {
	now := strconv.FormatInt(m.now().UnixMilli(), 10)
	k := key(sessionID)

	if err := m.client.ZRemRangeByScore(ctx, k, "-inf", now).Err(); err != nil {
		return nil, fmt.Errorf("marker: prune %s: %w", sessionID, err)
	}
	ids, err := m.client.ZRangeByScore(ctx, k, &redis.ZRangeBy{Min: "(" + now, Max: "+inf"}).Result()
	if err != nil {
		return nil, fmt.Errorf("marker: recent %s: %w", sessionID, err)
	}
	return ids, nil
}

// Nop is used when Redis is disabled.
type Nop struct{}

// Mark does nothing.
func (Nop) Mark(context.Context, string, string) error { return nil }

// Recent returns no tools.
func (Nop) Recent(context.Context, string) ([]string, error) { return nil, nil }
