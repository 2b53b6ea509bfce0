package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/darkkaiser/linkcompra-server/internal/domain/catalog"
	"github.com/darkkaiser/linkcompra-server/internal/domain/lead"
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/internal/pkg/money"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/constants"
	apihandler "github.com/darkkaiser/linkcompra-server/internal/service/api/handler"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/httputil"
	apiresponse "github.com/darkkaiser/linkcompra-server/internal/service/api/model/response"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/v1/model/response"
	"github.com/darkkaiser/linkcompra-server/internal/service/contract"
	"github.com/darkkaiser/linkcompra-server/internal/service/contract/mocks"
	"github.com/darkkaiser/linkcompra-server/internal/service/offers"
	"github.com/darkkaiser/linkcompra-server/internal/service/subscription"
)

type mockSubscriptions struct {
	mock.Mock
}

func (m *mockSubscriptions) Subscribe(ctx context.Context, req subscription.SubscribeRequest) (*lead.Lead, error) {
	args := m.Called(ctx, req)
	l, _ := args.Get(0).(*lead.Lead)
	return l, args.Error(1)
}

func (m *mockSubscriptions) Unsubscribe(ctx context.Context, req subscription.UnsubscribeRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

type mockSearcher struct {
	mock.Mock
}

func (m *mockSearcher) Search(ctx context.Context, query string) (offers.Result, error) {
	args := m.Called(ctx, query)
	r, _ := args.Get(0).(offers.Result)
	return r, args.Error(1)
}

type handlerFixture struct {
	e        *echo.Echo
	subs     *mockSubscriptions
	searcher *mockSearcher
	products *mocks.MockProductRepository
	handler  *Handler
}

func newHandlerFixture() *handlerFixture {
	f := &handlerFixture{
		e:        echo.New(),
		subs:     &mockSubscriptions{},
		searcher: &mockSearcher{},
		products: &mocks.MockProductRepository{},
	}
	f.e.Validator = apihandler.NewRequestValidator()
	f.e.HTTPErrorHandler = httputil.ErrorHandler
	f.handler = NewHandler(f.subs, f.searcher, f.products)

	return f
}

// do 핸들러를 호출하고, 반환된 에러는 전역 에러 핸들러로 응답에 기록합니다.
func (f *handlerFixture) do(method, target, body string, params map[string]string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()

	c := f.e.NewContext(req, rec)
	for name, value := range params {
		c.SetParamNames(name)
		c.SetParamValues(value)
	}

	if err := h(c); err != nil {
		f.e.HTTPErrorHandler(err, c)
	}

	return rec
}

func decodeErrorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body apiresponse.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, rec.Code, body.ResultCode)
	return body.Message
}

// TestNewHandler 필수 의존성 누락 시 패닉을 검증합니다.
func TestNewHandler(t *testing.T) {
	subs, searcher, products := &mockSubscriptions{}, &mockSearcher{}, &mocks.MockProductRepository{}

	assert.NotPanics(t, func() { NewHandler(subs, searcher, products) })
	assert.PanicsWithValue(t, constants.PanicMsgSubscriptionRequired, func() { NewHandler(nil, searcher, products) })
	assert.PanicsWithValue(t, constants.PanicMsgOffersSearcherRequired, func() { NewHandler(subs, nil, products) })
	assert.PanicsWithValue(t, constants.PanicMsgProductRepositoryRequired, func() { NewHandler(subs, searcher, nil) })
}

// TestSubscribeHandler 구독 요청의 검증, 서비스 호출, 응답 변환을 검증합니다.
func TestSubscribeHandler(t *testing.T) {
	const validBody = `{"phone":"(11) 98765-4321","password":"1234","product_id":"iphone-15-128gb","target_price":"3999.90"}`

	t.Run("Success", func(t *testing.T) {
		f := newHandlerFixture()
		f.subs.On("Subscribe", mock.Anything, mock.MatchedBy(func(req subscription.SubscribeRequest) bool {
			return req.Phone == "(11) 98765-4321" &&
				req.Password == "1234" &&
				req.ProductID == "iphone-15-128gb" &&
				req.TargetPrice.Equal(money.MustParse("3999.90"))
		})).Return(&lead.Lead{
			ID:          "lead-1",
			Phone:       "+5511987654321",
			ProductID:   "iphone-15-128gb",
			TargetPrice: money.MustParse("3999.90"),
		}, nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/alerts", validBody, nil, f.handler.SubscribeHandler)

		require.Equal(t, http.StatusCreated, rec.Code)
		var body response.AlertResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "lead-1", body.ID)
		assert.Equal(t, "+55*******4321", body.Phone, "응답의 전화번호는 마스킹되어야 합니다")
		assert.Equal(t, "3999.90", body.TargetPrice.String())
		f.subs.AssertExpectations(t)
	})

	t.Run("Success_NumericTargetPrice", func(t *testing.T) {
		f := newHandlerFixture()
		f.subs.On("Subscribe", mock.Anything, mock.MatchedBy(func(req subscription.SubscribeRequest) bool {
			return req.TargetPrice.Equal(money.MustParse("150.5"))
		})).Return(&lead.Lead{ID: "lead-2", Phone: "+5511987654321", TargetPrice: money.MustParse("150.5")}, nil).Once()

		body := `{"phone":"11987654321","password":"1234","product_id":"p1","target_price":150.5}`
		rec := f.do(http.MethodPost, "/api/v1/alerts", body, nil, f.handler.SubscribeHandler)

		assert.Equal(t, http.StatusCreated, rec.Code)
		f.subs.AssertExpectations(t)
	})

	tests := []struct {
		name        string
		body        string
		serviceErr  error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "Failure_MalformedJSON",
			body:        `{"phone":`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: constants.ErrMsgBadRequestInvalidBody,
		},
		{
			name:        "Failure_MissingPhone",
			body:        `{"password":"1234","product_id":"p1","target_price":"10.00"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "O campo telefone é obrigatório",
		},
		{
			name:        "Failure_InvalidPhone",
			body:        `{"phone":"123","password":"1234","product_id":"p1","target_price":"10.00"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "O campo telefone deve ser um telefone brasileiro válido",
		},
		{
			name:        "Failure_ZeroTargetPrice",
			body:        `{"phone":"11987654321","password":"1234","product_id":"p1","target_price":"0"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "O campo preço desejado deve ser maior que 0",
		},
		{
			name:        "Failure_WrongPasswordForExistingLead",
			body:        validBody,
			serviceErr:  subscription.ErrInvalidCredentials,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: constants.ErrMsgInvalidCredentials,
		},
		{
			name:        "Failure_ProductNotFound",
			body:        validBody,
			serviceErr:  apperrors.Wrapf(subscription.ErrProductNotFound, apperrors.NotFound, "상품 조회 실패 (id=%s)", "iphone-15-128gb"),
			wantStatus:  http.StatusNotFound,
			wantMessage: constants.ErrMsgProductNotFound,
		},
		{
			name:        "Failure_StorageError",
			body:        validBody,
			serviceErr:  apperrors.New(apperrors.System, "mongo 연결 끊김"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: constants.ErrMsgInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture()
			if tt.serviceErr != nil {
				f.subs.On("Subscribe", mock.Anything, mock.Anything).Return(nil, tt.serviceErr).Once()
			}

			rec := f.do(http.MethodPost, "/api/v1/alerts", tt.body, nil, f.handler.SubscribeHandler)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMessage, decodeErrorMessage(t, rec))
			if tt.serviceErr == nil {
				f.subs.AssertNotCalled(t, "Subscribe", mock.Anything, mock.Anything)
			}
			f.subs.AssertExpectations(t)
		})
	}
}

// TestUnsubscribeHandler 구독 해지 요청을 검증합니다.
func TestUnsubscribeHandler(t *testing.T) {
	const body = `{"phone":"11987654321","password":"1234","product_id":"iphone-15-128gb"}`

	t.Run("Success", func(t *testing.T) {
		f := newHandlerFixture()
		f.subs.On("Unsubscribe", mock.Anything, subscription.UnsubscribeRequest{
			Phone:     "11987654321",
			Password:  "1234",
			ProductID: "iphone-15-128gb",
		}).Return(nil).Once()

		rec := f.do(http.MethodDelete, "/api/v1/alerts", body, nil, f.handler.UnsubscribeHandler)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp apiresponse.SuccessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 0, resp.ResultCode)
		f.subs.AssertExpectations(t)
	})

	t.Run("Failure_InvalidCredentials", func(t *testing.T) {
		f := newHandlerFixture()
		f.subs.On("Unsubscribe", mock.Anything, mock.Anything).Return(subscription.ErrInvalidCredentials).Once()

		rec := f.do(http.MethodDelete, "/api/v1/alerts", body, nil, f.handler.UnsubscribeHandler)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, constants.ErrMsgInvalidCredentials, decodeErrorMessage(t, rec))
	})

	t.Run("Failure_MissingPassword", func(t *testing.T) {
		f := newHandlerFixture()

		rec := f.do(http.MethodDelete, "/api/v1/alerts", `{"phone":"11987654321","product_id":"p1"}`, nil, f.handler.UnsubscribeHandler)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "O campo senha é obrigatório", decodeErrorMessage(t, rec))
		f.subs.AssertNotCalled(t, "Unsubscribe", mock.Anything, mock.Anything)
	})
}

// TestSearchOffersHandler 오퍼 검색 결과 변환과 에러 매핑을 검증합니다.
func TestSearchOffersHandler(t *testing.T) {
	fetchedAt := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		f := newHandlerFixture()
		f.searcher.On("Search", mock.Anything, "air fryer").Return(offers.Result{
			Query: "air fryer",
			Offers: []offers.Offer{
				{Provider: "mercadolivre", Title: "Air Fryer 4L", Price: money.MustParse("299.90"), URL: "https://ml/1", FreeShipping: true},
				{Provider: "amazon", Title: "Air Fryer 5L", Price: money.MustParse("349.00"), URL: "https://amz/2"},
			},
			ProviderErrors: map[string]string{"shopee": "timeout"},
			FetchedAt:      fetchedAt,
		}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/offers?q=air+fryer", "", nil, f.handler.SearchOffersHandler)

		require.Equal(t, http.StatusOK, rec.Code)
		var body response.OffersResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "air fryer", body.Query)
		assert.Equal(t, 2, body.Total)
		require.Len(t, body.Offers, 2)
		assert.Equal(t, "mercadolivre", body.Offers[0].Provider)
		assert.True(t, body.Offers[0].FreeShipping)
		assert.Equal(t, "timeout", body.ProviderErrors["shopee"])
		assert.True(t, fetchedAt.Equal(body.FetchedAt))
		f.searcher.AssertExpectations(t)
	})

	t.Run("Success_EmptyResultIsArray", func(t *testing.T) {
		f := newHandlerFixture()
		f.searcher.On("Search", mock.Anything, "xyz").Return(offers.Result{Query: "xyz", Cached: true}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/offers?q=xyz", "", nil, f.handler.SearchOffersHandler)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"offers":[]`)
		assert.Contains(t, rec.Body.String(), `"cached":true`)
	})

	t.Run("Failure_MissingQuery", func(t *testing.T) {
		f := newHandlerFixture()

		rec := f.do(http.MethodGet, "/api/v1/offers", "", nil, f.handler.SearchOffersHandler)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "O campo busca é obrigatório", decodeErrorMessage(t, rec))
		f.searcher.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("Failure_AllProvidersFailed", func(t *testing.T) {
		f := newHandlerFixture()
		f.searcher.On("Search", mock.Anything, "tv").Return(offers.Result{}, offers.ErrAllProvidersFailed).Once()

		rec := f.do(http.MethodGet, "/api/v1/offers?q=tv", "", nil, f.handler.SearchOffersHandler)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, constants.ErrMsgOffersUnavailable, decodeErrorMessage(t, rec))
	})

	t.Run("Failure_BlankQueryFromService", func(t *testing.T) {
		f := newHandlerFixture()
		f.searcher.On("Search", mock.Anything, "   ").Return(offers.Result{}, offers.ErrEmptyQuery).Once()

		rec := f.do(http.MethodGet, "/api/v1/offers?q=+++", "", nil, f.handler.SearchOffersHandler)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, constants.ErrMsgEmptyQuery, decodeErrorMessage(t, rec))
	})
}

// TestProductComparisonHandler 가격 비교 응답의 정렬과 최저가 선택을 검증합니다.
func TestProductComparisonHandler(t *testing.T) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	product := &catalog.ComparisonProduct{
		ID:   "iphone-15-128gb",
		Name: "iPhone 15 128GB",
		EAN:  "0195949036118",
		Prices: []catalog.StorePrice{
			{Store: catalog.StoreKabum, Price: money.MustParse("4599.00"), Available: true, UpdatedAt: now},
			{Store: catalog.StoreAmazon, Price: money.MustParse("4299.00"), Available: true, LowestPrice: money.MustParse("3999.00"), UpdatedAt: now},
			{Store: catalog.StoreMagalu, Price: money.MustParse("3899.00"), Available: false, UpdatedAt: now},
		},
		UpdatedAt: now,
	}

	t.Run("Success", func(t *testing.T) {
		f := newHandlerFixture()
		f.products.On("FindByID", mock.Anything, "iphone-15-128gb").Return(product, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/products/iphone-15-128gb/comparison", "", map[string]string{"id": "iphone-15-128gb"}, f.handler.ProductComparisonHandler)

		require.Equal(t, http.StatusOK, rec.Code)
		var body response.ComparisonResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "iPhone 15 128GB", body.Name)
		require.Len(t, body.Prices, 3)
		assert.Equal(t, "amazon", body.Prices[0].Store)
		assert.Equal(t, "Amazon", body.Prices[0].StoreName)
		assert.Equal(t, "kabum", body.Prices[1].Store)
		assert.Equal(t, "magalu", body.Prices[2].Store, "판매 불가 항목은 마지막에 위치해야 합니다")
		require.NotNil(t, body.MinPrice)
		assert.Equal(t, "amazon", body.MinPrice.Store)
		assert.Equal(t, "4299.00", body.MinPrice.Price.String())
		f.products.AssertExpectations(t)
	})

	t.Run("Failure_NotFound", func(t *testing.T) {
		f := newHandlerFixture()
		f.products.On("FindByID", mock.Anything, "nope").Return(nil, contract.ErrNotFound).Once()

		rec := f.do(http.MethodGet, "/api/v1/products/nope/comparison", "", map[string]string{"id": "nope"}, f.handler.ProductComparisonHandler)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, constants.ErrMsgProductNotFound, decodeErrorMessage(t, rec))
	})

	t.Run("Failure_StorageError", func(t *testing.T) {
		f := newHandlerFixture()
		f.products.On("FindByID", mock.Anything, "p1").Return(nil, assert.AnError).Once()

		rec := f.do(http.MethodGet, "/api/v1/products/p1/comparison", "", map[string]string{"id": "p1"}, f.handler.ProductComparisonHandler)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, constants.ErrMsgInternalServer, decodeErrorMessage(t, rec))
	})

	t.Run("Failure_BlankID", func(t *testing.T) {
		f := newHandlerFixture()

		rec := f.do(http.MethodGet, "/api/v1/products/%20/comparison", "", map[string]string{"id": " "}, f.handler.ProductComparisonHandler)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.products.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}
