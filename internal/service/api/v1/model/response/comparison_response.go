package response

import (
	"time"

	"github.com/darkkaiser/linkcompra-server/internal/pkg/money"
)

// StorePriceItem 소매점 하나의 현재가와 역대 최저가
type StorePriceItem struct {
	Store         string       `json:"store" example:"amazon"`
	StoreName     string       `json:"store_name" example:"Amazon"`
	URL           string       `json:"url"`
	Price         money.Amount `json:"price" swaggertype:"string" example:"4299.00"`
	Available     bool         `json:"available"`
	LowestPrice   money.Amount `json:"lowest_price" swaggertype:"string" example:"3999.00"`
	LowestPriceAt *time.Time   `json:"lowest_price_at,omitempty"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// ComparisonResponse 상품의 소매점별 가격 비교 결과
type ComparisonResponse struct {
	ID       string            `json:"id" example:"iphone-15-128gb"`
	Name     string            `json:"name" example:"iPhone 15 128GB"`
	Slug     string            `json:"slug,omitempty"`
	EAN      string            `json:"ean,omitempty"`
	Category string            `json:"category,omitempty"`
	Images   []string          `json:"images,omitempty"`
	Specs    map[string]string `json:"specs,omitempty"`

	// 구매 가능한 최저가 항목. 구매 가능한 소매점이 없으면 생략합니다.
	MinPrice *StorePriceItem `json:"min_price,omitempty"`

	// 가격 오름차순, 판매 불가 항목은 뒤로 정렬
	Prices []StorePriceItem `json:"prices"`

	UpdatedAt time.Time `json:"updated_at"`
}
