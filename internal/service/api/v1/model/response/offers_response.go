package response

import (
	"time"

	"github.com/darkkaiser/linkcompra-server/internal/pkg/money"
)

// OfferItem 제휴 제공자의 상품 하나
type OfferItem struct {
	Provider     string       `json:"provider" example:"mercadolivre"`
	Title        string       `json:"title" example:"Fritadeira Air Fryer 4L"`
	Price        money.Amount `json:"price" swaggertype:"string" example:"299.90"`
	URL          string       `json:"url" example:"https://produto.mercadolivre.com.br/MLB-123"`
	ImageURL     string       `json:"image_url,omitempty"`
	Store        string       `json:"store,omitempty" example:"Mercado Livre"`
	FreeShipping bool         `json:"free_shipping"`
}

// OffersResponse 오퍼 검색 결과 (가격 오름차순)
type OffersResponse struct {
	Query  string      `json:"query" example:"air fryer"`
	Total  int         `json:"total" example:"12"`
	Offers []OfferItem `json:"offers"`
	// 캐시에서 응답했는지 여부
	Cached bool `json:"cached"`
	// 실패한 제공자별 사유 (일부 실패 시에도 나머지 결과는 반환)
	ProviderErrors map[string]string `json:"provider_errors,omitempty"`
	FetchedAt      time.Time         `json:"fetched_at"`
}
