package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/darkkaiser/linkcompra-server/internal/domain/lead"
	apihandler "github.com/darkkaiser/linkcompra-server/internal/service/api/handler"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/httputil"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/v1/handler"
	"github.com/darkkaiser/linkcompra-server/internal/service/contract/mocks"
	"github.com/darkkaiser/linkcompra-server/internal/service/offers"
	"github.com/darkkaiser/linkcompra-server/internal/service/subscription"
)

type fakeSubscriptions struct{}

func (fakeSubscriptions) Subscribe(_ context.Context, req subscription.SubscribeRequest) (*lead.Lead, error) {
	return &lead.Lead{ID: "lead-1", Phone: "+5511987654321", ProductID: req.ProductID, TargetPrice: req.TargetPrice}, nil
}

func (fakeSubscriptions) Unsubscribe(context.Context, subscription.UnsubscribeRequest) error {
	return nil
}

type fakeSearcher struct{}

func (fakeSearcher) Search(_ context.Context, query string) (offers.Result, error) {
	return offers.Result{Query: query}, nil
}

func setupRouter() *echo.Echo {
	e := echo.New()
	e.Validator = apihandler.NewRequestValidator()
	e.HTTPErrorHandler = httputil.ErrorHandler

	RegisterRoutes(e, handler.NewHandler(fakeSubscriptions{}, fakeSearcher{}, &mocks.MockProductRepository{}))

	return e
}

// TestRegisterRoutes v1 엔드포인트가 올바른 메서드와 경로로 등록되는지 검증합니다.
func TestRegisterRoutes(t *testing.T) {
	e := setupRouter()

	registered := make(map[string]bool)
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"POST /api/v1/alerts",
		"DELETE /api/v1/alerts",
		"GET /api/v1/offers",
		"GET /api/v1/products/:id/comparison",
	} {
		assert.True(t, registered[want], "%s 라우트가 등록되어야 합니다", want)
	}
}

// TestRegisterRoutes_Requests 라우터를 통한 요청 처리와 Content-Type 검증을 확인합니다.
func TestRegisterRoutes_Requests(t *testing.T) {
	const alertBody = `{"phone":"11987654321","password":"1234","product_id":"p1","target_price":"99.90"}`

	tests := []struct {
		name        string
		method      string
		target      string
		body        string
		contentType string
		wantStatus  int
	}{
		{"Success_Subscribe", http.MethodPost, "/api/v1/alerts", alertBody, echo.MIMEApplicationJSON, http.StatusCreated},
		{"Success_SubscribeWithCharset", http.MethodPost, "/api/v1/alerts", alertBody, "application/json; charset=utf-8", http.StatusCreated},
		{"Success_Unsubscribe", http.MethodDelete, "/api/v1/alerts", alertBody, echo.MIMEApplicationJSON, http.StatusOK},
		{"Success_Offers", http.MethodGet, "/api/v1/offers?q=tv", "", "", http.StatusOK},
		{"Failure_SubscribeWrongContentType", http.MethodPost, "/api/v1/alerts", alertBody, echo.MIMETextPlain, http.StatusUnsupportedMediaType},
		{"Failure_MethodNotAllowed", http.MethodPut, "/api/v1/alerts", "", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := setupRouter()

			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, tt.target, nil)
			}
			if tt.contentType != "" {
				req.Header.Set(echo.HeaderContentType, tt.contentType)
			}
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}
