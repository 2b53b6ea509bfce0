package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/darkkaiser/linkcompra-server/internal/domain/catalog"
	"github.com/darkkaiser/linkcompra-server/internal/domain/lead"
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/internal/pkg/money"
	"github.com/darkkaiser/linkcompra-server/internal/service/contract"
)

const testTimeout = 5 * time.Second

func namespace(mt *mtest.T) string {
	return mt.DB.Name() + "." + mt.Coll.Name()
}

// TestProductRepository 목(mock) 배포를 사용해 드라이버 응답을 저장소 결과로 변환하는지 검증합니다.
func TestProductRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("Success_FindByID", func(mt *mtest.T) {
		repo := newProductRepository(mt.Coll, testTimeout)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "rtx-4060"},
			{Key: "name", Value: "Placa de Vídeo RTX 4060"},
			{Key: "prices", Value: bson.A{
				bson.D{
					{Key: "store", Value: "kabum"},
					{Key: "url", Value: "https://www.kabum.com.br/produto/1"},
					{Key: "price", Value: "1999.90"},
					{Key: "available", Value: true},
				},
			}},
		}))

		p, err := repo.FindByID(ctx, "rtx-4060")

		require.NoError(mt, err)
		assert.Equal(mt, "Placa de Vídeo RTX 4060", p.Name)
		require.Len(mt, p.Prices, 1)
		assert.Equal(mt, catalog.StoreKabum, p.Prices[0].Store)
		assert.True(mt, p.Prices[0].Price.Equal(money.MustParse("1999.90")))
	})

	mt.Run("Failure_NotFound", func(mt *mtest.T) {
		repo := newProductRepository(mt.Coll, testTimeout)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, err := repo.FindByEAN(ctx, "4006381333931")

		assert.ErrorIs(mt, err, contract.ErrNotFound)
	})

	mt.Run("Success_FindAll", func(mt *mtest.T) {
		repo := newProductRepository(mt.Coll, testTimeout)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "a"}, {Key: "name", Value: "A"}},
			bson.D{{Key: "_id", Value: "b"}, {Key: "name", Value: "B"}},
		))

		all, err := repo.FindAll(ctx)

		require.NoError(mt, err)
		require.Len(mt, all, 2)
		assert.Equal(mt, "b", all[1].ID)
	})

	mt.Run("Success_SaveUpsert", func(mt *mtest.T) {
		repo := newProductRepository(mt.Coll, testTimeout)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		err := repo.Save(ctx, &catalog.ComparisonProduct{ID: "a", Name: "A"})

		require.NoError(mt, err)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "update", started.CommandName)
	})

	mt.Run("Failure_DuplicateEAN", func(mt *mtest.T) {
		repo := newProductRepository(mt.Coll, testTimeout)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: comparison_products index: uniq_ean",
		}))

		err := repo.Save(ctx, &catalog.ComparisonProduct{ID: "b", EAN: "96385074"})

		assert.ErrorIs(mt, err, contract.ErrConflict)
	})

	mt.Run("Failure_CommandError", func(mt *mtest.T) {
		repo := newProductRepository(mt.Coll, testTimeout)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad value",
		}))

		_, err := repo.FindAll(ctx)

		require.Error(mt, err)
		assert.True(mt, apperrors.Is(err, apperrors.System))
	})
}

func TestLeadRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("Success_FindActive", func(mt *mtest.T) {
		repo := newLeadRepository(mt.Coll, testTimeout)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "lead-1"},
			{Key: "phone", Value: "+5511987654321"},
			{Key: "product_id", Value: "rtx-4060"},
			{Key: "target_price", Value: "1800.00"},
			{Key: "active", Value: true},
			{Key: "notify_count", Value: int32(2)},
		}))

		leads, err := repo.FindActive(ctx)

		require.NoError(mt, err)
		require.Len(mt, leads, 1)
		assert.Equal(mt, "+5511987654321", leads[0].Phone)
		assert.True(mt, leads[0].TargetPrice.Equal(money.MustParse("1800")))
		assert.Equal(mt, 2, leads[0].NotifyCount)
	})

	mt.Run("Success_Save", func(mt *mtest.T) {
		repo := newLeadRepository(mt.Coll, testTimeout)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		err := repo.Save(ctx, &lead.Lead{ID: "lead-1", Phone: "+5511987654321", ProductID: "p", Active: true})

		assert.NoError(mt, err)
	})

	mt.Run("Failure_DuplicatePhoneAndProduct", func(mt *mtest.T) {
		repo := newLeadRepository(mt.Coll, testTimeout)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: leads index: uniq_phone_product",
		}))

		err := repo.Save(ctx, &lead.Lead{ID: "lead-2", Phone: "+5511987654321", ProductID: "p"})

		assert.ErrorIs(mt, err, contract.ErrConflict)
	})

	mt.Run("Success_Delete", func(mt *mtest.T) {
		repo := newLeadRepository(mt.Coll, testTimeout)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(mt, repo.Delete(ctx, "lead-1"))
	})

	mt.Run("Failure_DeleteNotFound", func(mt *mtest.T) {
		repo := newLeadRepository(mt.Coll, testTimeout)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		assert.ErrorIs(mt, repo.Delete(ctx, "missing"), contract.ErrNotFound)
	})
}

func TestStore_EnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Success", func(mt *mtest.T) {
		s := &Store{
			client:   mt.Client,
			products: newProductRepository(mt.Coll, testTimeout),
			leads:    newLeadRepository(mt.Coll, testTimeout),
		}
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())

		assert.NoError(mt, s.ensureIndexes(context.Background()))
	})

	mt.Run("Failure", func(mt *mtest.T) {
		s := &Store{
			client:   mt.Client,
			products: newProductRepository(mt.Coll, testTimeout),
			leads:    newLeadRepository(mt.Coll, testTimeout),
		}
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 85, Name: "IndexOptionsConflict", Message: "conflict"}))

		assert.Error(mt, s.ensureIndexes(context.Background()))
	})
}
