// Package mongodb MongoDB 기반의 상품/구독 저장소입니다.
package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/darkkaiser/linkcompra-server/internal/config"
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/internal/service/contract"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
	"github.com/darkkaiser/linkcompra-server/pkg/strutil"
)

const component = "storage.mongodb"

const (
	collectionProducts = "comparison_products"
	collectionLeads    = "leads"

	defaultTimeout = 10 * time.Second
)

// Store MongoDB 연결과 컬렉션별 저장소를 묶습니다.
type Store struct {
	client *mongo.Client

	products *productRepository
	leads    *leadRepository
}

var _ contract.StoragePinger = (*Store)(nil)

// Connect MongoDB에 연결하고 Ping으로 확인한 뒤 인덱스를 보장합니다.
func Connect(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout).
		SetAppName(config.AppName)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "MongoDB 연결 실패")
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "MongoDB 연결 실패: Ping 응답 없음")
	}

	db := client.Database(cfg.Database)
	s := &Store{
		client:   client,
		products: newProductRepository(db.Collection(collectionProducts), timeout),
		leads:    newLeadRepository(db.Collection(collectionLeads), timeout),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"uri":      strutil.MaskSensitiveData(cfg.URI),
		"database": cfg.Database,
	}).Info("MongoDB 연결 완료")

	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	if _, err := s.products.coll.Indexes().CreateMany(ctx, productIndexes()); err != nil {
		return apperrors.Wrap(err, apperrors.System, "MongoDB 인덱스 생성 실패: "+collectionProducts)
	}
	if _, err := s.leads.coll.Indexes().CreateMany(ctx, leadIndexes()); err != nil {
		return apperrors.Wrap(err, apperrors.System, "MongoDB 인덱스 생성 실패: "+collectionLeads)
	}
	return nil
}

func productIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ean", Value: 1}},
			Options: options.Index().SetName("uniq_ean").SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetName("idx_slug"),
		},
	}
}

func leadIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "phone", Value: 1}, {Key: "product_id", Value: 1}},
			Options: options.Index().SetName("uniq_phone_product").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "active", Value: 1}},
			Options: options.Index().SetName("idx_active"),
		},
	}
}

func (s *Store) Products() contract.ProductRepository { return s.products }

func (s *Store) Leads() contract.LeadRepository { return s.leads }

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return apperrors.Wrap(err, apperrors.Unavailable, "MongoDB 상태 확인 실패")
	}
	return nil
}

// Close 연결을 끊습니다.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// translateError 드라이버 오류를 contract 오류로 변환합니다.
func translateError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return contract.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return contract.ErrConflict
	case mongo.IsTimeout(err), errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrap(err, apperrors.Timeout, "MongoDB 요청 시간 초과: "+op)
	default:
		return apperrors.Wrap(err, apperrors.System, "MongoDB 요청 실패: "+op)
	}
}
