package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/darkkaiser/linkcompra-server/internal/config"
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
)

const dialTimeout = 5 * time.Second

// redisClient Redis 명령 중 캐시에 필요한 것만 추린 인터페이스입니다.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Redis 값을 JSON으로 직렬화하여 저장합니다.
type Redis[V any] struct {
	client redisClient
	closer func() error
}

// DialRedis 연결 후 PING으로 확인합니다.
func DialRedis[V any](ctx context.Context, cfg config.RedisConfig) (*Redis[V], error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, apperrors.Wrapf(err, apperrors.Unavailable, "Redis(%s) 연결 실패", cfg.Addr)
	}

	return &Redis[V]{client: client, closer: client.Close}, nil
}

func newRedis[V any](client redisClient) *Redis[V] {
	return &Redis[V]{client: client, closer: func() error { return nil }}
}

func (r *Redis[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var v V

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return v, false, nil
		}
		return v, false, apperrors.Wrap(err, apperrors.Unavailable, "Redis 캐시 조회 실패")
	}

	if err := json.Unmarshal(data, &v); err != nil {
		return v, false, apperrors.Wrap(err, apperrors.ParsingFailed, "Redis 캐시 값 역직렬화 실패")
	}

	return v, true, nil
}

func (r *Redis[V]) Set(ctx context.Context, key string, v V, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "Redis 캐시 값 직렬화 실패")
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.Unavailable, "Redis 캐시 저장 실패")
	}

	return nil
}

func (r *Redis[V]) Close() error { return r.closer() }
