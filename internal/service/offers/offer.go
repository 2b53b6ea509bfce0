// Package offers 여러 제휴 제공자의 상품 검색 결과를 모아 정렬하고 캐시합니다.
package offers

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/internal/pkg/money"
	"github.com/darkkaiser/linkcompra-server/pkg/strutil"
)

var (
	ErrEmptyQuery = apperrors.New(apperrors.InvalidInput, "검색어는 비워둘 수 없습니다")

	// ErrAllProvidersFailed 활성 제공자가 모두 실패했습니다. 이 결과는 캐시하지 않습니다.
	ErrAllProvidersFailed = apperrors.New(apperrors.Unavailable, "모든 오퍼 제공자 호출이 실패했습니다")

	ErrNoProviders = apperrors.New(apperrors.Unavailable, "활성화된 오퍼 제공자가 없습니다")
)

type Offer struct {
	Provider     string       `json:"provider"`
	Title        string       `json:"title"`
	Price        money.Amount `json:"price"`
	URL          string       `json:"url"`
	ImageURL     string       `json:"image_url,omitempty"`
	Store        string       `json:"store,omitempty"`
	FreeShipping bool         `json:"free_shipping"`
}

type Result struct {
	Query          string            `json:"query"`
	Offers         []Offer           `json:"offers"`
	Cached         bool              `json:"cached"`
	ProviderErrors map[string]string `json:"provider_errors,omitempty"`
	FetchedAt      time.Time         `json:"fetched_at"`
}

// Provider 제휴 API 하나입니다. limit은 제공자가 허용하는 범위로 잘라서 사용합니다.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]Offer, error)
}

// NormalizeQuery 소문자로 바꾸고 공백을 정리합니다.
func NormalizeQuery(q string) (string, error) {
	q = strings.ToLower(strutil.NormalizeSpaces(q))
	if q == "" {
		return "", ErrEmptyQuery
	}
	return q, nil
}

func cacheKey(normalized string) string {
	return "offers:v1:" + normalized
}
