package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"assistant/internal/chat"
	"assistant/internal/logx"
)

// RedisStore keeps history in a redis list per session, trimmed to the last
// max entries on every append and expired after ttl of inactivity. Lets
// several assistant processes share one history space.
type RedisStore struct {
	rdb redis.Cmdable
	max int
	ttl time.Duration
}

func NewRedisStore(rdb redis.Cmdable, max int, ttl time.Duration) *RedisStore {
	if max <= 0 {
		max = 10
	}
	return &RedisStore{rdb: rdb, max: max, ttl: ttl}
}

func (s *RedisStore) historyKey(sessionID string) string {
	return fmt.Sprintf("session:%s:history", sessionID)
}

func (s *RedisStore) History(ctx context.Context, sessionID string) ([]chat.Exchange, error) {
	key := s.historyKey(sessionID)
	rows, err := s.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("load history %s: %w", key, err)
	}
	out := make([]chat.Exchange, 0, len(rows))
	for i, row := range rows {
		var ex chat.Exchange
		if err := json.Unmarshal([]byte(row), &ex); err != nil {
			logx.Warn().Str("key", key).Int("index", i).Err(err).Msg("skipping undecodable history entry")
			continue
		}
		out = append(out, ex)
	}
	return out, nil
}

func (s *RedisStore) Append(ctx context.Context, sessionID string, ex chat.Exchange) error {
	b, err := json.Marshal(ex)
	if err != nil {
		return fmt.Errorf("marshal exchange: %w", err)
	}
	key := s.historyKey(sessionID)
	if err := s.rdb.RPush(ctx, key, b).Err(); err != nil {
		return fmt.Errorf("push history %s: %w", key, err)
	}
	if err := s.rdb.LTrim(ctx, key, int64(-s.max), -1).Err(); err != nil {
		return fmt.Errorf("trim history %s: %w", key, err)
	}
	if s.ttl > 0 {
		if err := s.rdb.Expire(ctx, key, s.ttl).Err(); err != nil {
			logx.Warn().Str("key", key).Err(err).Msg("failed to refresh history TTL")
		}
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
