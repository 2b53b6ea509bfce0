package contract

import (
	"context"

	"github.com/darkkaiser/linkcompra-server/internal/domain/catalog"
	"github.com/darkkaiser/linkcompra-server/internal/domain/lead"
)

// ProductRepository 비교 상품 저장소입니다. 없는 상품은 ErrNotFound를 반환합니다.
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*catalog.ComparisonProduct, error)
	FindAll(ctx context.Context) ([]*catalog.ComparisonProduct, error)
	FindByEAN(ctx context.Context, ean string) (*catalog.ComparisonProduct, error)

	// Save ID 기준으로 생성하거나 덮어씁니다.
	Save(ctx context.Context, p *catalog.ComparisonProduct) error
}

// LeadRepository 가격 알림 구독 저장소입니다. 없는 구독은 ErrNotFound를 반환합니다.
type LeadRepository interface {
	FindActive(ctx context.Context) ([]*lead.Lead, error)
	FindByID(ctx context.Context, id string) (*lead.Lead, error)
	FindByPhoneAndProduct(ctx context.Context, phone, productID string) (*lead.Lead, error)

	// Save ID 기준으로 생성하거나 덮어씁니다. (phone, product_id)가 다른 구독과 겹치면 ErrConflict입니다.
	Save(ctx context.Context, l *lead.Lead) error

	Delete(ctx context.Context, id string) error
}

// StoragePinger 저장소 연결 상태를 확인합니다.
type StoragePinger interface {
	Ping(ctx context.Context) error
}
