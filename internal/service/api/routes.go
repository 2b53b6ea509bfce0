package api

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/darkkaiser/linkcompra-server/internal/service/api/handler/system"
)

// RegisterRoutes 버전 그룹에 속하지 않는 전역 라우트를 등록합니다.
//
//   - GET /health, GET /version: 시스템 엔드포인트
//   - GET /swagger/*: API 문서
func RegisterRoutes(e *echo.Echo, h *system.Handler) {
	e.GET("/health", h.HealthCheckHandler)
	e.GET("/version", h.VersionHandler)

	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(
		echoSwagger.URL("/swagger/doc.json"),
		echoSwagger.DeepLinking(true),
		// 태그 목록만 펼친 상태로 표시합니다.
		echoSwagger.DocExpansion("list"),
	))
}
