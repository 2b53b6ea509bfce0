// Package v1 LinkCompra API의 v1 라우트를 정의합니다.
//
// 주요 엔드포인트:
//   - POST   /api/v1/alerts                   - 가격 알림 구독
//   - DELETE /api/v1/alerts                   - 가격 알림 해지
//   - GET    /api/v1/offers?q=                - 제휴 오퍼 검색
//   - GET    /api/v1/products/:id/comparison  - 소매점별 가격 비교
package v1

import (
	"github.com/labstack/echo/v4"

	"github.com/darkkaiser/linkcompra-server/internal/service/api/middleware"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/v1/handler"
)

// RegisterRoutes /api/v1 그룹에 엔드포인트를 등록합니다.
// 본문을 받는 엔드포인트에는 JSON Content-Type 검증을 적용합니다.
func RegisterRoutes(e *echo.Echo, h *handler.Handler) {
	g := e.Group("/api/v1")

	requireJSON := middleware.ValidateContentType(echo.MIMEApplicationJSON)

	g.POST("/alerts", h.SubscribeHandler, requireJSON)
	g.DELETE("/alerts", h.UnsubscribeHandler, requireJSON)

	g.GET("/offers", h.SearchOffersHandler)
	g.GET("/products/:id/comparison", h.ProductComparisonHandler)
}
