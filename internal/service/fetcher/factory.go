package fetcher

import (
	"github.com/darkkaiser/linkcompra-server/internal/config"
)

// New 설정에 따라 기본 Fetcher 체인을 구성합니다.
func New(cfg config.HTTPRetryConfig) Fetcher {
	return NewRetryFetcher(
		NewMaxBytesFetcher(NewHTTPFetcher(cfg.Timeout), DefaultMaxBytes),
		cfg.MaxRetries,
		cfg.RetryDelay,
		defaultMaxRetryDelay,
	)
}
