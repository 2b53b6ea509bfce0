package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestValidateContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		contentType string
		wantStatus  int
	}{
		{"Success_JSON", `{"a":1}`, echo.MIMEApplicationJSON, http.StatusOK},
		{"Success_JSONWithCharset", `{"a":1}`, "application/json; charset=utf-8", http.StatusOK},
		{"Success_UpperCase", `{"a":1}`, "Application/JSON", http.StatusOK},
		{"Success_EmptyBodySkipsCheck", "", "", http.StatusOK},
		{"Failure_MissingHeader", `{"a":1}`, "", http.StatusUnsupportedMediaType},
		{"Failure_Form", "a=1", echo.MIMEApplicationForm, http.StatusUnsupportedMediaType},
		{"Failure_JSONPrefixTrick", `{"a":1}`, "application/jsonx", http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := echo.New()
			e.POST("/api/v1/alerts", func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			}, ValidateContentType(echo.MIMEApplicationJSON))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set(echo.HeaderContentType, tt.contentType)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
