package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// ScoreKV is the Redis-backed slot for the serialized leaderboard: one key
// holding the whole JSON array, written in a single SET so a failed write
// leaves the previous value intact.
type ScoreKV struct {
	client *redis.Client
	key    string
}

func NewScoreKV(client *redis.Client, key string) *ScoreKV {
	return &ScoreKV{client: client, key: key}
}

func (s *ScoreKV) Get(ctx context.Context) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *ScoreKV) Set(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, s.key, data, 0).Err()
}

func (s *ScoreKV) Delete(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
