package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkkaiser/linkcompra-server/internal/pkg/money"
)

func newTestProduct() *ComparisonProduct {
	return &ComparisonProduct{
		ID:   "p1",
		Name: "SSD Kingston NV2 1TB",
		Slug: "ssd-kingston-nv2-1tb",
		Prices: []StorePrice{
			{Store: StoreAmazon, Price: money.MustParse("459.90"), Available: true},
			{Store: StoreKabum, Price: money.MustParse("429.90"), Available: true},
			{Store: StorePichau, Price: money.MustParse("399.90"), Available: false},
			{Store: StoreTerabyte, Price: money.Zero, Available: true},
		},
	}
}

// TestComparisonProduct_MinPrice 구매 가능하고 양수인 가격 중 최저가만 선택되는지 검증합니다.
func TestComparisonProduct_MinPrice(t *testing.T) {
	t.Parallel()

	t.Run("Success_IgnoresUnavailableAndZero", func(t *testing.T) {
		sp, ok := newTestProduct().MinPrice()

		require.True(t, ok)
		assert.Equal(t, StoreKabum, sp.Store)
		assert.Equal(t, "429.90", sp.Price.String())
	})

	t.Run("Success_TieKeepsFirst", func(t *testing.T) {
		p := &ComparisonProduct{Prices: []StorePrice{
			{Store: StoreMagalu, Price: money.MustParse("100"), Available: true},
			{Store: StoreAmazon, Price: money.MustParse("100"), Available: true},
		}}

		sp, ok := p.MinPrice()
		require.True(t, ok)
		assert.Equal(t, StoreMagalu, sp.Store)
	})

	t.Run("Failure_NoPrice", func(t *testing.T) {
		p := &ComparisonProduct{Prices: []StorePrice{
			{Store: StoreAmazon, Price: money.MustParse("100"), Available: false},
		}}

		_, ok := p.MinPrice()
		assert.False(t, ok)

		_, ok = (&ComparisonProduct{}).MinPrice()
		assert.False(t, ok)
	})
}

func TestComparisonProduct_PriceFor(t *testing.T) {
	p := newTestProduct()

	sp, ok := p.PriceFor(StorePichau)
	require.True(t, ok)
	assert.False(t, sp.Available)

	_, ok = p.PriceFor(StoreMagalu)
	assert.False(t, ok)
}

// TestComparisonProduct_ApplyPrice 역대 최저가 갱신 규칙을 검증합니다.
func TestComparisonProduct_ApplyPrice(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("Success_FirstPriceSetsLowest", func(t *testing.T) {
		p := newTestProduct()

		renewed := p.ApplyPrice(StoreAmazon, money.MustParse("449.90"), true, now)

		sp, _ := p.PriceFor(StoreAmazon)
		assert.True(t, renewed)
		assert.Equal(t, "449.90", sp.Price.String())
		assert.Equal(t, "449.90", sp.LowestPrice.String())
		require.NotNil(t, sp.LowestPriceAt)
		assert.Equal(t, now, *sp.LowestPriceAt)
		assert.Equal(t, now, p.UpdatedAt)
	})

	t.Run("Success_HigherPriceKeepsLowest", func(t *testing.T) {
		p := newTestProduct()
		p.ApplyPrice(StoreAmazon, money.MustParse("400"), true, now)

		later := now.Add(time.Hour)
		renewed := p.ApplyPrice(StoreAmazon, money.MustParse("420"), true, later)

		sp, _ := p.PriceFor(StoreAmazon)
		assert.False(t, renewed)
		assert.Equal(t, "420.00", sp.Price.String())
		assert.Equal(t, "400.00", sp.LowestPrice.String())
		assert.Equal(t, now, *sp.LowestPriceAt)
		assert.Equal(t, later, sp.UpdatedAt)
	})

	t.Run("Success_EqualPriceDoesNotRenew", func(t *testing.T) {
		p := newTestProduct()
		p.ApplyPrice(StoreAmazon, money.MustParse("400"), true, now)

		assert.False(t, p.ApplyPrice(StoreAmazon, money.MustParse("400"), true, now.Add(time.Hour)))
	})

	t.Run("Success_UnavailableDoesNotLowerHistory", func(t *testing.T) {
		p := newTestProduct()
		p.ApplyPrice(StoreAmazon, money.MustParse("400"), true, now)

		renewed := p.ApplyPrice(StoreAmazon, money.MustParse("10"), false, now)

		sp, _ := p.PriceFor(StoreAmazon)
		assert.False(t, renewed)
		assert.False(t, sp.Available)
		assert.Equal(t, "400.00", sp.LowestPrice.String())
	})

	t.Run("Success_ZeroDoesNotLowerHistory", func(t *testing.T) {
		p := newTestProduct()
		assert.False(t, p.ApplyPrice(StoreTerabyte, money.Zero, true, now))
	})

	t.Run("Failure_UnknownStore", func(t *testing.T) {
		p := newTestProduct()
		assert.False(t, p.ApplyPrice(StoreMagalu, money.MustParse("1"), true, now))
		assert.True(t, p.UpdatedAt.IsZero())
	})
}

// TestComparisonProduct_ApplyPriceAt 같은 소매점의 URL이 여러 개여도 항목별로 반영되는지 검증합니다.
func TestComparisonProduct_ApplyPriceAt(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	newTwoListings := func() *ComparisonProduct {
		return &ComparisonProduct{
			ID:   "p-dup",
			Name: "Headset",
			Prices: []StorePrice{
				{Store: StoreAmazon, URL: "https://www.amazon.com.br/dp/A1"},
				{Store: StoreAmazon, URL: "https://www.amazon.com.br/dp/A2"},
			},
		}
	}

	t.Run("Success_SameStoreAppliedPerEntry", func(t *testing.T) {
		p := newTwoListings()

		assert.True(t, p.ApplyPriceAt(0, money.MustParse("300"), true, now))
		assert.True(t, p.ApplyPriceAt(1, money.MustParse("250"), true, now))

		assert.Equal(t, "300.00", p.Prices[0].Price.String())
		assert.Equal(t, "300.00", p.Prices[0].LowestPrice.String())
		assert.Equal(t, "250.00", p.Prices[1].Price.String())
		assert.Equal(t, "250.00", p.Prices[1].LowestPrice.String())
	})

	t.Run("Success_ApplyPriceUpdatesFirstEntryOnly", func(t *testing.T) {
		p := newTwoListings()

		p.ApplyPrice(StoreAmazon, money.MustParse("300"), true, now)

		assert.Equal(t, "300.00", p.Prices[0].Price.String())
		assert.True(t, p.Prices[1].UpdatedAt.IsZero())
	})

	t.Run("Failure_OutOfRange", func(t *testing.T) {
		p := newTwoListings()

		assert.False(t, p.ApplyPriceAt(2, money.MustParse("1"), true, now))
		assert.False(t, p.ApplyPriceAt(-1, money.MustParse("1"), true, now))
		assert.True(t, p.UpdatedAt.IsZero())
	})
}

func TestComparisonProduct_SortedPrices(t *testing.T) {
	p := newTestProduct()

	sorted := p.SortedPrices()

	require.Len(t, sorted, 4)
	assert.Equal(t, StoreKabum, sorted[0].Store)
	assert.Equal(t, StoreAmazon, sorted[1].Store)
	assert.Equal(t, StorePichau, sorted[2].Store, "구매 불가 항목은 원래 순서대로 뒤에 위치해야 합니다")
	assert.Equal(t, StoreTerabyte, sorted[3].Store)
	assert.Equal(t, StoreAmazon, p.Prices[0].Store, "원본은 변경되지 않아야 합니다")
}

func TestComparisonProduct_PathSegment(t *testing.T) {
	assert.Equal(t, "ssd-kingston-nv2-1tb", newTestProduct().PathSegment())
	assert.Equal(t, "p2", (&ComparisonProduct{ID: "p2"}).PathSegment())
}

func TestStore(t *testing.T) {
	for _, s := range Stores() {
		assert.True(t, s.Valid(), s)
		assert.NotEqual(t, string(s), s.DisplayName())
	}

	assert.False(t, Store("aliexpress").Valid())
	assert.Equal(t, "aliexpress", Store("aliexpress").DisplayName())
	assert.Equal(t, "KaBuM!", StoreKabum.DisplayName())
}

func TestNormalizeEAN(t *testing.T) {
	t.Parallel()

	valid := []struct {
		in, want string
	}{
		{"4006381333931", "4006381333931"},
		{"400-6381-33393-1", "4006381333931"},
		{"96385074", "96385074"},
		{"10012345678902", "10012345678902"},
		{" 7891000000014 ", "7891000000014"},
	}
	for _, tt := range valid {
		t.Run("Success_"+tt.want, func(t *testing.T) {
			got, err := NormalizeEAN(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, in := range []string{"", "123", "4006381333932", "400638133393", "96385075"} {
		t.Run("Failure_"+in, func(t *testing.T) {
			_, err := NormalizeEAN(in)
			assert.ErrorIs(t, err, ErrInvalidEAN)
		})
	}
}
