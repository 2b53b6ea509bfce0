package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/constants"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/model/response"
)

// TestErrorHandler 전역 에러 핸들러의 상태 코드 변환, 응답 본문, 로그 레벨을 검증합니다.
//
// 주의: 전역 로거에 훅을 추가하므로 t.Parallel()을 사용하지 않습니다.
func TestErrorHandler(t *testing.T) {
	hook := test.NewGlobal()

	tests := []struct {
		name        string
		method      string
		err         error
		wantStatus  int
		wantMessage string
		wantLevel   logrus.Level
	}{
		{
			name:        "Success_HTTPErrorWithErrorResponse",
			method:      http.MethodPost,
			err:         NewBadRequestError(constants.ErrMsgInvalidPhone),
			wantStatus:  http.StatusBadRequest,
			wantMessage: constants.ErrMsgInvalidPhone,
			wantLevel:   logrus.WarnLevel,
		},
		{
			name:        "Success_HTTPErrorWithStringMessage",
			method:      http.MethodGet,
			err:         echo.NewHTTPError(http.StatusUnsupportedMediaType, "tipo inválido"),
			wantStatus:  http.StatusUnsupportedMediaType,
			wantMessage: "tipo inválido",
			wantLevel:   logrus.WarnLevel,
		},
		{
			name:        "Success_EchoNotFoundUsesDefaultMessage",
			method:      http.MethodGet,
			err:         echo.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: constants.ErrMsgNotFound,
			wantLevel:   logrus.WarnLevel,
		},
		{
			name:        "Success_EchoBodyLimitUsesDefaultMessage",
			method:      http.MethodPost,
			err:         echo.ErrStatusRequestEntityTooLarge,
			wantStatus:  http.StatusRequestEntityTooLarge,
			wantMessage: constants.ErrMsgRequestEntityTooLarge,
			wantLevel:   logrus.WarnLevel,
		},
		{
			name:        "Success_AppErrorInvalidInput",
			method:      http.MethodPost,
			err:         apperrors.New(apperrors.InvalidInput, "내부 메시지"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: constants.ErrMsgBadRequest,
			wantLevel:   logrus.WarnLevel,
		},
		{
			name:        "Success_AppErrorWrappedNotFound",
			method:      http.MethodGet,
			err:         apperrors.Wrap(apperrors.New(apperrors.NotFound, "상품 없음"), apperrors.Internal, "비교 조회 실패"),
			wantStatus:  http.StatusNotFound,
			wantMessage: constants.ErrMsgNotFound,
			wantLevel:   logrus.WarnLevel,
		},
		{
			name:        "Success_AppErrorUnavailable",
			method:      http.MethodGet,
			err:         apperrors.New(apperrors.Unavailable, "제공자 전체 실패"),
			wantStatus:  http.StatusServiceUnavailable,
			wantMessage: constants.ErrMsgServiceUnavailable,
			wantLevel:   logrus.ErrorLevel,
		},
		{
			name:        "Success_DeadlineExceeded",
			method:      http.MethodGet,
			err:         fmt.Errorf("검색 실패: %w", context.DeadlineExceeded),
			wantStatus:  http.StatusGatewayTimeout,
			wantMessage: constants.ErrMsgTimeout,
			wantLevel:   logrus.ErrorLevel,
		},
		{
			name:        "Success_PlainErrorIsInternal",
			method:      http.MethodGet,
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: constants.ErrMsgInternalServer,
			wantLevel:   logrus.ErrorLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook.Reset()

			e := echo.New()
			req := httptest.NewRequest(tt.method, "/api/v1/alerts", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			ErrorHandler(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body response.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.ResultCode)
			assert.Equal(t, tt.wantMessage, body.Message)

			require.NotNil(t, hook.LastEntry())
			assert.Equal(t, tt.wantLevel, hook.LastEntry().Level)
			assert.Equal(t, constants.ComponentErrorHandler, hook.LastEntry().Data["component"])
			assert.Equal(t, tt.wantStatus, hook.LastEntry().Data["status_code"])
		})
	}
}

// TestErrorHandler_HeadRequest HEAD 요청은 본문 없이 상태 코드만 반환하는지 검증합니다.
func TestErrorHandler_HeadRequest(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodHead, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ErrorHandler(apperrors.New(apperrors.Unavailable, "점검"), c)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Empty(t, rec.Body.String())
}

// TestErrorHandler_CommittedResponse 이미 응답이 전송된 경우 다시 쓰지 않는지 검증합니다.
func TestErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, c.String(http.StatusOK, "ok"))
	ErrorHandler(errors.New("late"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		errType apperrors.ErrorType
		want    int
	}{
		{apperrors.InvalidInput, http.StatusBadRequest},
		{apperrors.Unauthorized, http.StatusUnauthorized},
		{apperrors.Forbidden, http.StatusForbidden},
		{apperrors.NotFound, http.StatusNotFound},
		{apperrors.Conflict, http.StatusConflict},
		{apperrors.Unavailable, http.StatusServiceUnavailable},
		{apperrors.Timeout, http.StatusGatewayTimeout},
		{apperrors.System, http.StatusInternalServerError},
		{apperrors.ExecutionFailed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.errType.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, StatusCode(apperrors.New(tt.errType, "x")))
		})
	}
}
