package offers

import (
	"context"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/darkkaiser/linkcompra-server/internal/config"
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/internal/service/offers/cache"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
	"github.com/darkkaiser/linkcompra-server/pkg/strutil"
)

const component = "offers.aggregator"

const (
	defaultTimeout    = 8 * time.Second
	defaultMaxResults = 40
	defaultCacheTTL   = 5 * time.Minute
)

type Aggregator struct {
	providers []Provider
	cache     cache.Cache[Result]

	ttl        time.Duration
	timeout    time.Duration
	maxResults int

	excluded *strutil.KeywordMatcher

	// inflight 같은 검색어의 동시 요청을 제공자 호출 한 번으로 합친다.
	inflight singleflight.Group

	now func() time.Time
}

func NewAggregator(cfg config.OffersConfig, providers []Provider, c cache.Cache[Result]) *Aggregator {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if c == nil {
		c = cache.NewMemory[Result]()
	}

	excluded := make([]string, 0, len(cfg.ExcludedKeywords))
	for _, k := range cfg.ExcludedKeywords {
		excluded = append(excluded, strutil.RemoveAccents(k))
	}

	return &Aggregator{
		providers: providers,
		cache:     c,

		ttl:        ttl,
		timeout:    timeout,
		maxResults: maxResults,

		excluded: strutil.NewKeywordMatcher(nil, excluded),

		now: time.Now,
	}
}

// Search 캐시에 있으면 그대로 반환하고, 없으면 모든 제공자를 병렬로 호출해 결과를 합칩니다.
func (a *Aggregator) Search(ctx context.Context, query string) (Result, error) {
	normalized, err := NormalizeQuery(query)
	if err != nil {
		return Result{}, err
	}

	key := cacheKey(normalized)

	cached, ok, err := a.cache.Get(ctx, key)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"key":   key,
			"error": err,
		}).Warn("오퍼 캐시 조회 실패 (캐시 미스로 처리)")
	} else if ok {
		cached.Cached = true
		return cached, nil
	}

	// 공유 조회는 먼저 들어온 요청의 취소와 분리하고 자체 기한으로 제한한다.
	// 각 호출자는 자신의 ctx가 끝나면 결과를 기다리지 않고 돌아간다.
	ch := a.inflight.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.fetchTimeout())
		defer cancel()

		return a.refresh(fctx, normalized)
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			res, _ := r.Val.(Result)
			return res, r.Err
		}
		return r.Val.(Result), nil

	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Warmup 캐시 여부와 관계없이 검색어별 결과를 새로 받아 캐시에 넣습니다.
func (a *Aggregator) Warmup(ctx context.Context, queries []string) (warmed int, err error) {
	var errs []string

	for _, q := range queries {
		if ctx.Err() != nil {
			break
		}

		normalized, err := NormalizeQuery(q)
		if err != nil {
			continue
		}

		if _, err := a.refresh(ctx, normalized); err != nil {
			errs = append(errs, normalized+": "+err.Error())
			continue
		}
		warmed++
	}

	if len(errs) > 0 {
		return warmed, apperrors.Newf(apperrors.ExecutionFailed, "오퍼 캐시 예열 실패 (%d건): %s", len(errs), strings.Join(errs, "; "))
	}
	return warmed, nil
}

func (a *Aggregator) refresh(ctx context.Context, normalized string) (Result, error) {
	if len(a.providers) == 0 {
		return Result{Query: normalized}, ErrNoProviders
	}

	found := make([][]Offer, len(a.providers))
	errs := make([]error, len(a.providers))

	// 한 제공자의 실패가 다른 제공자를 취소하지 않도록 WithContext를 쓰지 않는다.
	var g errgroup.Group
	for i, p := range a.providers {
		g.Go(func() error {
			pctx, cancel := context.WithTimeout(ctx, a.providerTimeout(p))
			defer cancel()

			found[i], errs[i] = p.Search(pctx, normalized, a.maxResults)
			return nil
		})
	}
	_ = g.Wait()

	result := Result{
		Query:     normalized,
		FetchedAt: a.now(),
	}

	var merged []Offer
	for i, p := range a.providers {
		if errs[i] != nil {
			if result.ProviderErrors == nil {
				result.ProviderErrors = make(map[string]string)
			}
			result.ProviderErrors[p.Name()] = errs[i].Error()

			applog.WithComponentAndFields(component, applog.Fields{
				"provider": p.Name(),
				"query":    normalized,
				"error":    errs[i],
			}).Warn("오퍼 제공자 호출 실패")
			continue
		}
		merged = append(merged, found[i]...)
	}

	if len(result.ProviderErrors) == len(a.providers) {
		return result, apperrors.Wrapf(ErrAllProvidersFailed, apperrors.Unavailable, "검색어: %s", normalized)
	}

	result.Offers = a.mergeOffers(merged)

	if err := a.cache.Set(ctx, cacheKey(normalized), result, a.ttl); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"query": normalized,
			"error": err,
		}).Warn("오퍼 캐시 저장 실패")
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"query":           normalized,
		"offers":          len(result.Offers),
		"provider_errors": len(result.ProviderErrors),
	}).Debug("오퍼 검색 완료")

	return result, nil
}

// timeouter 제공자별 타임아웃을 가진 Provider입니다. 없으면 offers.timeout을 씁니다.
type timeouter interface {
	Timeout() time.Duration
}

func (a *Aggregator) providerTimeout(p Provider) time.Duration {
	if t, ok := p.(timeouter); ok && t.Timeout() > 0 {
		return t.Timeout()
	}
	return a.timeout
}

// fetchTimeout 가장 느린 제공자의 타임아웃입니다.
func (a *Aggregator) fetchTimeout() time.Duration {
	d := a.timeout
	for _, p := range a.providers {
		if t := a.providerTimeout(p); t > d {
			d = t
		}
	}
	return d
}

// mergeOffers 유효하지 않거나 제외 키워드가 포함된 오퍼를 거르고, 같은 상품 URL은 더 싼 쪽만 남긴 뒤 가격순으로 정렬합니다.
func (a *Aggregator) mergeOffers(offers []Offer) []Offer {
	out := make([]Offer, 0, len(offers))
	index := make(map[string]int, len(offers))

	for _, o := range offers {
		if !o.Price.IsPositive() || strings.TrimSpace(o.URL) == "" {
			continue
		}
		if a.excluded.Excluded(o.Title) || a.excluded.Excluded(strutil.RemoveAccents(o.Title)) {
			continue
		}

		key := canonicalURL(o.URL)
		if i, ok := index[key]; ok {
			if o.Price.LessThan(out[i].Price) {
				out[i] = o
			}
			continue
		}
		index[key] = len(out)
		out = append(out, o)
	}

	slices.SortStableFunc(out, func(x, y Offer) int {
		if c := x.Price.Cmp(y.Price); c != 0 {
			return c
		}
		return strings.Compare(x.Provider, y.Provider)
	})

	if len(out) > a.maxResults {
		out = out[:a.maxResults]
	}
	return out
}
