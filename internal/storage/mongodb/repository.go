package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/darkkaiser/linkcompra-server/internal/domain/catalog"
	"github.com/darkkaiser/linkcompra-server/internal/domain/lead"
	"github.com/darkkaiser/linkcompra-server/internal/service/contract"
)

// documents 컬렉션 하나에 대한 공통 조회/저장 로직입니다. 모든 요청에 timeout을 적용합니다.
type documents[T any] struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func (d *documents[T]) findOne(ctx context.Context, filter bson.M, op string) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	v := new(T)
	if err := d.coll.FindOne(ctx, filter).Decode(v); err != nil {
		return nil, translateError(err, op)
	}
	return v, nil
}

func (d *documents[T]) find(ctx context.Context, filter bson.M, op string) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	cursor, err := d.coll.Find(ctx, filter)
	if err != nil {
		return nil, translateError(err, op)
	}

	var out []*T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, translateError(err, op)
	}
	return out, nil
}

// upsert _id 기준으로 문서를 통째로 교체하거나 새로 만듭니다.
func (d *documents[T]) upsert(ctx context.Context, id string, v *T, op string) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	_, err := d.coll.ReplaceOne(ctx, bson.M{"_id": id}, v, options.Replace().SetUpsert(true))
	return translateError(err, op)
}

type productRepository struct {
	documents[catalog.ComparisonProduct]
}

func newProductRepository(coll *mongo.Collection, timeout time.Duration) *productRepository {
	return &productRepository{documents[catalog.ComparisonProduct]{coll: coll, timeout: timeout}}
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*catalog.ComparisonProduct, error) {
	return r.findOne(ctx, bson.M{"_id": id}, "상품 조회")
}

func (r *productRepository) FindAll(ctx context.Context) ([]*catalog.ComparisonProduct, error) {
	return r.find(ctx, bson.M{}, "상품 목록 조회")
}

func (r *productRepository) FindByEAN(ctx context.Context, ean string) (*catalog.ComparisonProduct, error) {
	return r.findOne(ctx, bson.M{"ean": ean}, "EAN 상품 조회")
}

func (r *productRepository) Save(ctx context.Context, p *catalog.ComparisonProduct) error {
	return r.upsert(ctx, p.ID, p, "상품 저장")
}

type leadRepository struct {
	documents[lead.Lead]
}

func newLeadRepository(coll *mongo.Collection, timeout time.Duration) *leadRepository {
	return &leadRepository{documents[lead.Lead]{coll: coll, timeout: timeout}}
}

func (r *leadRepository) FindActive(ctx context.Context) ([]*lead.Lead, error) {
	return r.find(ctx, bson.M{"active": true}, "활성 구독 조회")
}

func (r *leadRepository) FindByID(ctx context.Context, id string) (*lead.Lead, error) {
	return r.findOne(ctx, bson.M{"_id": id}, "구독 조회")
}

func (r *leadRepository) FindByPhoneAndProduct(ctx context.Context, phone, productID string) (*lead.Lead, error) {
	return r.findOne(ctx, bson.M{"phone": phone, "product_id": productID}, "전화번호/상품 구독 조회")
}

func (r *leadRepository) Save(ctx context.Context, l *lead.Lead) error {
	return r.upsert(ctx, l.ID, l, "구독 저장")
}

func (r *leadRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translateError(err, "구독 삭제")
	}
	if res.DeletedCount == 0 {
		return contract.ErrNotFound
	}
	return nil
}
