// Package catalog 비교 상품과 소매점별 가격 도메인 모델을 정의합니다.
package catalog

import (
	"slices"
	"time"

	"github.com/darkkaiser/linkcompra-server/internal/pkg/money"
)

// StorePrice 한 소매점에서의 현재 가격과 역대 최저가입니다.
type StorePrice struct {
	Store         Store        `json:"store" bson:"store"`
	URL           string       `json:"url" bson:"url"`
	Price         money.Amount `json:"price" bson:"price"`
	Available     bool         `json:"available" bson:"available"`
	LowestPrice   money.Amount `json:"lowest_price" bson:"lowest_price"`
	LowestPriceAt *time.Time   `json:"lowest_price_at,omitempty" bson:"lowest_price_at,omitempty"`
	UpdatedAt     time.Time    `json:"updated_at" bson:"updated_at"`
}

// ComparisonProduct 여러 소매점의 가격을 비교하는 상품입니다.
type ComparisonProduct struct {
	ID        string            `json:"id" bson:"_id"`
	Name      string            `json:"name" bson:"name"`
	Slug      string            `json:"slug" bson:"slug"`
	EAN       string            `json:"ean,omitempty" bson:"ean,omitempty"`
	Category  string            `json:"category,omitempty" bson:"category,omitempty"`
	Images    []string          `json:"images,omitempty" bson:"images,omitempty"`
	Specs     map[string]string `json:"specs,omitempty" bson:"specs,omitempty"`
	Prices    []StorePrice      `json:"prices" bson:"prices"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" bson:"updated_at"`
}

// MinPrice 구매 가능하고 가격이 0보다 큰 항목 중 최저가 항목을 반환합니다.
// 동일 가격이면 먼저 나온 항목이 선택됩니다.
func (p *ComparisonProduct) MinPrice() (StorePrice, bool) {
	var (
		best  StorePrice
		found bool
	)
	for _, sp := range p.Prices {
		if !sp.Available || !sp.Price.IsPositive() {
			continue
		}
		if !found || sp.Price.LessThan(best.Price) {
			best, found = sp, true
		}
	}
	return best, found
}

func (p *ComparisonProduct) PriceFor(store Store) (StorePrice, bool) {
	for _, sp := range p.Prices {
		if sp.Store == store {
			return sp, true
		}
	}
	return StorePrice{}, false
}

// ApplyPrice 소매점 가격을 갱신하고 역대 최저가가 갱신되었는지 반환합니다.
//
// 같은 소매점이 여러 번 등록되어 있으면 첫 번째 항목만 갱신합니다. 항목별로 반영하려면 ApplyPriceAt을 씁니다.
// 등록되지 않은 소매점이면 false를 반환하고 아무것도 바꾸지 않습니다.
func (p *ComparisonProduct) ApplyPrice(store Store, price money.Amount, available bool, now time.Time) (lowestRenewed bool) {
	for i := range p.Prices {
		if p.Prices[i].Store == store {
			return p.ApplyPriceAt(i, price, available, now)
		}
	}
	return false
}

// ApplyPriceAt Prices[i] 항목의 가격을 갱신하고 역대 최저가가 갱신되었는지 반환합니다.
//
// 판매 불가이거나 0 이하인 가격은 최저가에 반영하지 않습니다. 범위를 벗어난 i는 무시합니다.
func (p *ComparisonProduct) ApplyPriceAt(i int, price money.Amount, available bool, now time.Time) (lowestRenewed bool) {
	if i < 0 || i >= len(p.Prices) {
		return false
	}

	sp := &p.Prices[i]
	sp.Price = price
	sp.Available = available
	sp.UpdatedAt = now

	if available && price.IsPositive() && (!sp.LowestPrice.IsPositive() || price.LessThan(sp.LowestPrice)) {
		sp.LowestPrice = price
		at := now
		sp.LowestPriceAt = &at
		lowestRenewed = true
	}

	p.UpdatedAt = now
	return lowestRenewed
}

// SortedPrices 가격 오름차순 사본을 반환합니다. 가격이 없거나 판매 불가인 항목은 뒤로 보냅니다.
func (p *ComparisonProduct) SortedPrices() []StorePrice {
	out := make([]StorePrice, len(p.Prices))
	copy(out, p.Prices)

	rank := func(sp StorePrice) bool { return sp.Available && sp.Price.IsPositive() }
	slices.SortStableFunc(out, func(a, b StorePrice) int {
		ra, rb := rank(a), rank(b)
		switch {
		case ra && !rb:
			return -1
		case !ra && rb:
			return 1
		case !ra && !rb:
			return 0
		}
		return a.Price.Cmp(b.Price)
	})
	return out
}

// PathSegment 상품 페이지 경로에 쓰일 값입니다. slug가 없으면 ID를 사용합니다.
func (p *ComparisonProduct) PathSegment() string {
	if p.Slug != "" {
		return p.Slug
	}
	return p.ID
}
