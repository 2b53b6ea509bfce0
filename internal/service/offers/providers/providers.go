// Package providers 오퍼 검색에 사용하는 제휴 API 클라이언트입니다.
package providers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/darkkaiser/linkcompra-server/internal/config"
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/internal/service/fetcher"
	"github.com/darkkaiser/linkcompra-server/internal/service/offers"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
	"github.com/darkkaiser/linkcompra-server/pkg/maputil"
)

const component = "offers.providers"

const (
	defaultTimeout = 8 * time.Second
	retryCount     = 1
	retryWait      = 200 * time.Millisecond
)

type constructor func(cfg config.ProviderConfig) (offers.Provider, error)

var constructors = map[string]constructor{
	config.ProviderAmazon:       newAmazon,
	config.ProviderShopee:       newShopee,
	config.ProviderLomadee:      newLomadee,
	config.ProviderMercadoLivre: newMercadoLivre,
}

// New 활성화된 제공자 설정마다 Provider를 생성합니다. 하나라도 설정이 잘못되면 오류를 반환합니다.
func New(cfgs []config.ProviderConfig) ([]offers.Provider, error) {
	providers := make([]offers.Provider, 0, len(cfgs))

	for _, cfg := range cfgs {
		if !cfg.Enabled {
			continue
		}

		newProvider, ok := constructors[cfg.ID]
		if !ok {
			return nil, apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 오퍼 제공자입니다: %s", cfg.ID)
		}

		p, err := newProvider(cfg)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)

		applog.WithComponentAndFields(component, applog.Fields{
			"provider":   cfg.ID,
			"timeout":    cfg.Timeout,
			"rate_limit": cfg.RateLimit,
		}).Info("오퍼 제공자 등록")
	}

	return providers, nil
}

func decodeParams[T any](cfg config.ProviderConfig) (*T, error) {
	params, err := maputil.Decode[T](cfg.Params)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "오퍼 제공자(%s)의 params를 해석할 수 없습니다", cfg.ID)
	}
	return params, nil
}

func missingParam(id, name string) error {
	return apperrors.Newf(apperrors.InvalidInput, "오퍼 제공자(%s)의 params.%s가 비어 있습니다", id, name)
}

// base 제공자 공통의 resty 클라이언트와 호출 속도 제한입니다.
type base struct {
	name    string
	timeout time.Duration

	client  *resty.Client
	limiter *rate.Limiter
}

func newBase(cfg config.ProviderConfig, baseURL string) *base {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout).
		SetRetryCount(retryCount).
		SetRetryWaitTime(retryWait).
		SetRetryMaxWaitTime(4*retryWait).
		SetLogger(applog.WithComponentAndFields(component, applog.Fields{"provider": cfg.ID})).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})

	return &base{
		name:    cfg.ID,
		timeout: timeout,
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (b *base) Name() string { return b.name }

func (b *base) Timeout() time.Duration { return b.timeout }

func (b *base) wait(ctx context.Context) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return apperrors.Wrapf(err, apperrors.Unavailable, "오퍼 제공자(%s) 호출 속도 제한 대기 중 취소되었습니다", b.name)
	}
	return nil
}

// checkResponse 전송 오류와 2xx 이외의 응답을 apperrors로 변환합니다. reason은 응답 본문에서 찾은 오류 메시지입니다.
func (b *base) checkResponse(resp *resty.Response, err error, reason func([]byte) string) error {
	if err != nil {
		return apperrors.Wrapf(err, apperrors.Unavailable, "오퍼 제공자(%s) 호출 실패", b.name)
	}
	if !resp.IsError() {
		return nil
	}

	errType := fetcher.StatusErrorType(resp.StatusCode())
	if errType == apperrors.NotFound {
		errType = apperrors.ExecutionFailed
	}

	msg := ""
	if reason != nil {
		msg = reason(resp.Body())
	}
	if msg == "" {
		msg = resp.Status()
	}
	return apperrors.Newf(errType, "오퍼 제공자(%s) 오류 응답 (status: %d): %s", b.name, resp.StatusCode(), msg)
}
