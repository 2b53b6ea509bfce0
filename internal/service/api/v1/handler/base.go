// Package handler v1 API의 HTTP 요청 핸들러를 제공합니다.
//
// 요청을 바인딩하고 검증한 뒤 서비스 계층(구독, 오퍼 검색, 상품 비교)을 호출하고
// 결과를 응답 모델로 변환합니다.
package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/darkkaiser/linkcompra-server/internal/domain/lead"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/constants"
	"github.com/darkkaiser/linkcompra-server/internal/service/contract"
	"github.com/darkkaiser/linkcompra-server/internal/service/offers"
	"github.com/darkkaiser/linkcompra-server/internal/service/subscription"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
)

// SubscriptionService 가격 알림 구독을 등록하고 해지합니다.
type SubscriptionService interface {
	Subscribe(ctx context.Context, req subscription.SubscribeRequest) (*lead.Lead, error)
	Unsubscribe(ctx context.Context, req subscription.UnsubscribeRequest) error
}

// OffersSearcher 검색어로 제휴 오퍼를 조회합니다.
type OffersSearcher interface {
	Search(ctx context.Context, query string) (offers.Result, error)
}

// Handler v1 API 요청을 처리하는 핸들러입니다.
type Handler struct {
	subscriptions SubscriptionService
	offers        OffersSearcher
	products      contract.ProductRepository
}

// NewHandler Handler 인스턴스를 생성합니다. 모든 의존성은 필수입니다.
func NewHandler(subscriptions SubscriptionService, searcher OffersSearcher, products contract.ProductRepository) *Handler {
	if subscriptions == nil {
		panic(constants.PanicMsgSubscriptionRequired)
	}
	if searcher == nil {
		panic(constants.PanicMsgOffersSearcherRequired)
	}
	if products == nil {
		panic(constants.PanicMsgProductRepositoryRequired)
	}

	return &Handler{
		subscriptions: subscriptions,
		offers:        searcher,
		products:      products,
	}
}

// log 공통 로깅 필드가 설정된 로거 엔트리를 반환합니다.
func (h *Handler) log(c echo.Context) *applog.Entry {
	return applog.WithComponentAndFields(constants.ComponentV1Handler, applog.Fields{
		"endpoint":   c.Path(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	})
}
