package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkkaiser/linkcompra-server/internal/service/api/constants"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/model/response"
)

// TestErrorResponses 에러 생성 헬퍼가 올바른 상태 코드와 ErrorResponse를 담는지 검증합니다.
func TestErrorResponses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		createError func(string) error
		message     string
		wantStatus  int
	}{
		{"BadRequest", NewBadRequestError, constants.ErrMsgBadRequest, http.StatusBadRequest},
		{"Unauthorized", NewUnauthorizedError, constants.ErrMsgInvalidCredentials, http.StatusUnauthorized},
		{"NotFound", NewNotFoundError, constants.ErrMsgProductNotFound, http.StatusNotFound},
		{"UnsupportedMediaType", NewUnsupportedMediaTypeError, constants.ErrMsgUnsupportedMediaType, http.StatusUnsupportedMediaType},
		{"TooManyRequests", NewTooManyRequestsError, constants.ErrMsgTooManyRequests, http.StatusTooManyRequests},
		{"ServiceUnavailable", NewServiceUnavailableError, constants.ErrMsgOffersUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.createError(tt.message)

			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tt.wantStatus, he.Code)

			body, ok := he.Message.(response.ErrorResponse)
			require.True(t, ok)
			assert.Equal(t, tt.wantStatus, body.ResultCode)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestCreated(t *testing.T) {
	t.Parallel()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/v1/alerts", nil), rec)

	require.NoError(t, Created(c, map[string]string{"phone": "+55*******4321"}))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"phone":"+55*******4321"}`, rec.Body.String())
}

func TestSuccess(t *testing.T) {
	t.Parallel()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/api/v1/alerts", nil), rec)

	require.NoError(t, Success(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body response.SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 0, body.ResultCode)
	assert.Equal(t, "OK", body.Message)
}
