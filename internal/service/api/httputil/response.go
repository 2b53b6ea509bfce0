package httputil

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/darkkaiser/linkcompra-server/internal/service/api/model/response"
)

// NewHTTPError 본문이 ErrorResponse인 echo.HTTPError를 만듭니다.
//
// message는 클라이언트에게 그대로 노출되므로 constants의 ErrMsg* 문구만 사용합니다.
func NewHTTPError(code int, message string) *echo.HTTPError {
	return echo.NewHTTPError(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}

func NewBadRequestError(message string) error {
	return NewHTTPError(http.StatusBadRequest, message)
}

func NewUnauthorizedError(message string) error {
	return NewHTTPError(http.StatusUnauthorized, message)
}

func NewNotFoundError(message string) error {
	return NewHTTPError(http.StatusNotFound, message)
}

func NewUnsupportedMediaTypeError(message string) error {
	return NewHTTPError(http.StatusUnsupportedMediaType, message)
}

func NewTooManyRequestsError(message string) error {
	return NewHTTPError(http.StatusTooManyRequests, message)
}

// NewServiceUnavailableError 외부 의존성(오퍼 제공자 등)이 모두 실패했을 때 사용합니다.
func NewServiceUnavailableError(message string) error {
	return NewHTTPError(http.StatusServiceUnavailable, message)
}

// Created 201과 함께 body를 JSON으로 반환합니다.
func Created(c echo.Context, body any) error {
	return c.JSON(http.StatusCreated, body)
}

// Success 본문이 없는 작업의 성공 응답(200, result_code 0)을 반환합니다.
func Success(c echo.Context) error {
	return c.JSON(http.StatusOK, response.SuccessResponse{
		ResultCode: 0,
		Message:    "OK",
	})
}
