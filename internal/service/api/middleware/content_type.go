package middleware

import (
	"mime"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/darkkaiser/linkcompra-server/internal/service/api/constants"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
)

// ValidateContentType 요청 본문의 Content-Type을 검증하는 미들웨어를 반환합니다.
//
// 본문이 없는 요청(ContentLength 0)은 검증을 건너뜁니다.
// MIME 파라미터(charset 등)는 무시하고 미디어 타입만 대소문자 구분 없이 비교합니다.
func ValidateContentType(expectedContentType string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Body == nil || req.ContentLength == 0 {
				return next(c)
			}

			contentType := req.Header.Get(echo.HeaderContentType)
			mediaType, _, err := mime.ParseMediaType(contentType)
			if err != nil || !strings.EqualFold(mediaType, expectedContentType) {
				applog.WithComponentAndFields(constants.ComponentMiddlewareContentType, applog.Fields{
					"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
					"method":     req.Method,
					"path":       req.URL.Path,
					"expected":   expectedContentType,
					"actual":     contentType,
					"remote_ip":  c.RealIP(),
				}).Warn(constants.LogMsgUnsupportedContentType)

				return ErrUnsupportedMediaType
			}

			return next(c)
		}
	}
}
