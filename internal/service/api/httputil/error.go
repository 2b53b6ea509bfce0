package httputil

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/constants"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/model/response"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
)

// ErrorHandler Echo 프레임워크의 전역 에러 핸들러입니다.
//
// echo.HTTPError는 그대로, 서비스 계층의 apperrors는 분류에 맞는 상태 코드로 변환하여
// 표준 ErrorResponse JSON 형식으로 반환합니다. 5xx는 Error, 4xx는 Warn 레벨로 기록합니다.
func ErrorHandler(err error, c echo.Context) {
	code, message := resolve(err)

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if code >= http.StatusInternalServerError {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error(constants.LogMsgHTTP5xxServerError)
	} else if code >= http.StatusBadRequest {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn(constants.LogMsgHTTP4xxClientError)
	}

	// 이미 응답이 전송된 경우 추가 응답하지 않음
	if c.Response().Committed {
		return
	}

	// HEAD 요청은 본문 없이 응답
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	_ = c.JSON(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}

// resolve 에러를 상태 코드와 클라이언트에게 보여줄 메시지로 변환합니다.
// apperrors의 내부 메시지는 운영자용이므로 클라이언트에게 그대로 노출하지 않습니다.
func resolve(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := DefaultMessage(he.Code)
		switch m := he.Message.(type) {
		case string:
			// Echo 기본 에러(echo.ErrNotFound 등)의 영문 상태 텍스트는 기본 메시지로 대체합니다.
			if m != "" && m != http.StatusText(he.Code) {
				message = m
			}
		case response.ErrorResponse:
			message = m.Message
		}
		return he.Code, message
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, constants.ErrMsgTimeout
	}

	code := StatusCode(err)
	return code, DefaultMessage(code)
}

// StatusCode apperrors 분류를 HTTP 상태 코드로 변환합니다.
func StatusCode(err error) int {
	switch apperrors.UnderlyingType(err) {
	case apperrors.InvalidInput:
		return http.StatusBadRequest
	case apperrors.Unauthorized:
		return http.StatusUnauthorized
	case apperrors.Forbidden:
		return http.StatusForbidden
	case apperrors.NotFound:
		return http.StatusNotFound
	case apperrors.Conflict:
		return http.StatusConflict
	case apperrors.Unavailable:
		return http.StatusServiceUnavailable
	case apperrors.Timeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// DefaultMessage 상태 코드별 기본 클라이언트 메시지입니다.
func DefaultMessage(code int) string {
	switch code {
	case http.StatusBadRequest:
		return constants.ErrMsgBadRequest
	case http.StatusUnauthorized:
		return constants.ErrMsgInvalidCredentials
	case http.StatusNotFound:
		return constants.ErrMsgNotFound
	case http.StatusConflict:
		return constants.ErrMsgConflict
	case http.StatusRequestEntityTooLarge:
		return constants.ErrMsgRequestEntityTooLarge
	case http.StatusUnsupportedMediaType:
		return constants.ErrMsgUnsupportedMediaType
	case http.StatusTooManyRequests:
		return constants.ErrMsgTooManyRequests
	case http.StatusServiceUnavailable:
		return constants.ErrMsgServiceUnavailable
	case http.StatusGatewayTimeout:
		return constants.ErrMsgTimeout
	}
	if code >= http.StatusInternalServerError {
		return constants.ErrMsgInternalServer
	}
	return http.StatusText(code)
}
