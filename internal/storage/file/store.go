// Package file MongoDB 없이 로컬 디렉토리에 엔티티를 JSON 파일로 저장하는 저장소입니다.
//
// 개발 환경이나 단일 인스턴스 배포를 위한 것으로, 조회는 디렉토리 전체를 순회합니다.
package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/darkkaiser/linkcompra-server/internal/domain/catalog"
	"github.com/darkkaiser/linkcompra-server/internal/domain/lead"
	"github.com/darkkaiser/linkcompra-server/internal/service/contract"
)

const (
	defaultDataDirectory = "data"

	kindProduct = "products"
	kindLead    = "leads"
)

// Store 파일 기반 저장소입니다.
type Store struct {
	baseDir string

	products *productRepository
	leads    *leadRepository
}

var _ contract.StoragePinger = (*Store)(nil)

// Open dir 아래에 products, leads 디렉토리를 준비합니다. dir이 비어 있으면 "data"를 사용합니다.
func Open(dir string) (*Store, error) {
	if dir == "" {
		dir = defaultDataDirectory
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, newErrPathResolutionFailed(err)
	}

	products, err := newCollection[catalog.ComparisonProduct](absDir, kindProduct)
	if err != nil {
		return nil, err
	}
	leads, err := newCollection[lead.Lead](absDir, kindLead)
	if err != nil {
		return nil, err
	}

	return &Store{
		baseDir:  absDir,
		products: &productRepository{c: products},
		leads:    &leadRepository{c: leads},
	}, nil
}

func (s *Store) Products() contract.ProductRepository { return s.products }

func (s *Store) Leads() contract.LeadRepository { return s.leads }

// Ping 저장소 디렉토리에 접근할 수 있는지 확인합니다.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(s.baseDir); err != nil {
		return newErrDirectoryAccessFailed(err, s.baseDir)
	}
	return nil
}

func (s *Store) Close(context.Context) error { return nil }

type productRepository struct {
	c *collection[catalog.ComparisonProduct]

	// mu EAN 유일성 검사와 저장을 하나의 단위로 묶습니다.
	mu sync.Mutex
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*catalog.ComparisonProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.c.load(id)
}

func (r *productRepository) FindAll(ctx context.Context) ([]*catalog.ComparisonProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.c.loadAll()
}

func (r *productRepository) FindByEAN(ctx context.Context, ean string) (*catalog.ComparisonProduct, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range all {
		if p.EAN != "" && p.EAN == ean {
			return p, nil
		}
	}
	return nil, contract.ErrNotFound
}

func (r *productRepository) Save(ctx context.Context, p *catalog.ComparisonProduct) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if p.EAN != "" {
		all, err := r.c.loadAll()
		if err != nil {
			return err
		}
		for _, other := range all {
			if other.ID != p.ID && other.EAN == p.EAN {
				return contract.ErrConflict
			}
		}
	}

	return r.c.save(p.ID, p)
}

type leadRepository struct {
	c *collection[lead.Lead]

	// mu (phone, product_id) 유일성 검사와 저장을 하나의 단위로 묶습니다.
	mu sync.Mutex
}

func (r *leadRepository) FindActive(ctx context.Context) ([]*lead.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all, err := r.c.loadAll()
	if err != nil {
		return nil, err
	}

	active := all[:0]
	for _, l := range all {
		if l.Active {
			active = append(active, l)
		}
	}
	return active, nil
}

func (r *leadRepository) FindByID(ctx context.Context, id string) (*lead.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.c.load(id)
}

func (r *leadRepository) FindByPhoneAndProduct(ctx context.Context, phone, productID string) (*lead.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all, err := r.c.loadAll()
	if err != nil {
		return nil, err
	}
	for _, l := range all {
		if l.Phone == phone && l.ProductID == productID {
			return l, nil
		}
	}
	return nil, contract.ErrNotFound
}

func (r *leadRepository) Save(ctx context.Context, l *lead.Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.c.loadAll()
	if err != nil {
		return err
	}
	for _, other := range all {
		if other.ID != l.ID && other.Phone == l.Phone && other.ProductID == l.ProductID {
			return contract.ErrConflict
		}
	}

	return r.c.save(l.ID, l)
}

func (r *leadRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.c.remove(id)
}
