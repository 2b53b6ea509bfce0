package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/darkkaiser/linkcompra-server/internal/domain/catalog"
	"github.com/darkkaiser/linkcompra-server/internal/domain/lead"
)

// MockProductRepository contract.ProductRepository의 Mock 구현체입니다.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (*catalog.ComparisonProduct, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*catalog.ComparisonProduct)
	return p, args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]*catalog.ComparisonProduct, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]*catalog.ComparisonProduct)
	return ps, args.Error(1)
}

func (m *MockProductRepository) FindByEAN(ctx context.Context, ean string) (*catalog.ComparisonProduct, error) {
	args := m.Called(ctx, ean)
	p, _ := args.Get(0).(*catalog.ComparisonProduct)
	return p, args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, p *catalog.ComparisonProduct) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockLeadRepository contract.LeadRepository의 Mock 구현체입니다.
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) FindActive(ctx context.Context) ([]*lead.Lead, error) {
	args := m.Called(ctx)
	ls, _ := args.Get(0).([]*lead.Lead)
	return ls, args.Error(1)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*lead.Lead, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*lead.Lead)
	return l, args.Error(1)
}

func (m *MockLeadRepository) FindByPhoneAndProduct(ctx context.Context, phone, productID string) (*lead.Lead, error) {
	args := m.Called(ctx, phone, productID)
	l, _ := args.Get(0).(*lead.Lead)
	return l, args.Error(1)
}

func (m *MockLeadRepository) Save(ctx context.Context, l *lead.Lead) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
