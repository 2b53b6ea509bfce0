// Package cache TTL 기반 키-값 캐시입니다. 메모리와 Redis 드라이버를 제공합니다.
package cache

import (
	"context"
	"time"

	"github.com/darkkaiser/linkcompra-server/internal/config"
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
)

// Cache 값이 없거나 만료되었으면 ok=false입니다.
type Cache[V any] interface {
	Get(ctx context.Context, key string) (v V, ok bool, err error)
	Set(ctx context.Context, key string, v V, ttl time.Duration) error
}

// New 설정의 드라이버로 캐시를 생성합니다. 반환된 close 함수는 종료 시 호출해야 합니다.
func New[V any](ctx context.Context, cfg config.OffersCache) (Cache[V], func() error, error) {
	switch cfg.Driver {
	case "", config.CacheDriverMemory:
		return NewMemory[V](), func() error { return nil }, nil

	case config.CacheDriverRedis:
		r, err := DialRedis[V](ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil

	default:
		return nil, nil, apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 캐시 드라이버입니다: %s", cfg.Driver)
	}
}
