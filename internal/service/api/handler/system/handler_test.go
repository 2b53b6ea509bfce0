package system

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkkaiser/linkcompra-server/internal/pkg/version"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/constants"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/model/system"
	"github.com/darkkaiser/linkcompra-server/internal/service/contract"
	"github.com/darkkaiser/linkcompra-server/internal/service/contract/mocks"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("deadline이 설정되지 않았습니다")
	}
	return p.err
}

func serve(t *testing.T, h echo.HandlerFunc, path string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, path, nil), rec)
	require.NoError(t, h(c))

	return rec
}

func TestNewHandler(t *testing.T) {
	t.Parallel()

	t.Run("Success", func(t *testing.T) {
		t.Parallel()

		h := NewHandler(&mocks.MockNotificationSender{}, nil, version.Info{Version: "1.0.0"})

		assert.NotNil(t, h)
		assert.WithinDuration(t, time.Now(), h.serverStartTime, time.Second)
	})

	t.Run("Failure_NilHealthChecker", func(t *testing.T) {
		t.Parallel()

		assert.PanicsWithValue(t, constants.PanicMsgNotificationSenderRequired, func() {
			NewHandler(nil, nil, version.Info{})
		})
	})
}

// TestHandler_HealthCheckHandler 의존성 상태 조합에 따른 전체 상태를 검증합니다.
func TestHandler_HealthCheckHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		notifyErr     error
		storage       fakePinger
		useStorage    bool
		wantStatus    string
		wantDeps      map[string]string
		wantDepErrMsg string
	}{
		{
			name:       "Success_AllHealthy",
			useStorage: true,
			wantStatus: constants.HealthStatusHealthy,
			wantDeps: map[string]string{
				constants.DependencyNotificationService: constants.HealthStatusHealthy,
				constants.DependencyStorage:             constants.HealthStatusHealthy,
			},
		},
		{
			name:       "Success_StorageOmittedWhenNil",
			wantStatus: constants.HealthStatusHealthy,
			wantDeps: map[string]string{
				constants.DependencyNotificationService: constants.HealthStatusHealthy,
			},
		},
		{
			name:       "Failure_NotificationUnhealthy",
			notifyErr:  errors.New("알림 서비스가 중지되었습니다"),
			useStorage: true,
			wantStatus: constants.HealthStatusUnhealthy,
			wantDeps: map[string]string{
				constants.DependencyNotificationService: constants.HealthStatusUnhealthy,
				constants.DependencyStorage:             constants.HealthStatusHealthy,
			},
		},
		{
			name:          "Failure_StorageUnreachable",
			storage:       fakePinger{err: errors.New("connection refused")},
			useStorage:    true,
			wantStatus:    constants.HealthStatusUnhealthy,
			wantDepErrMsg: "connection refused",
			wantDeps: map[string]string{
				constants.DependencyNotificationService: constants.HealthStatusHealthy,
				constants.DependencyStorage:             constants.HealthStatusUnhealthy,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			checker := &mocks.MockNotificationSender{}
			checker.On("Health").Return(tt.notifyErr)

			var storage contract.StoragePinger
			if tt.useStorage {
				storage = tt.storage
			}
			h := NewHandler(checker, storage, version.Info{Version: "v1.4.0"})

			rec := serve(t, h.HealthCheckHandler, "/health")
			assert.Equal(t, http.StatusOK, rec.Code)

			var resp system.HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, "v1.4.0", resp.Version)
			assert.GreaterOrEqual(t, resp.Uptime, int64(0))
			_, err := time.Parse(time.RFC3339, resp.CheckedAt)
			assert.NoError(t, err)
			require.Len(t, resp.Dependencies, len(tt.wantDeps))
			for name, status := range tt.wantDeps {
				assert.Equal(t, status, resp.Dependencies[name].Status, name)
			}
			if tt.wantDepErrMsg != "" {
				assert.Equal(t, tt.wantDepErrMsg, resp.Dependencies[constants.DependencyStorage].Message)
			}

			checker.AssertExpectations(t)
		})
	}
}

func TestHandler_VersionHandler(t *testing.T) {
	t.Parallel()

	buildInfo := version.Info{
		Version:     "v1.4.0",
		Commit:      "abc1234",
		BuildDate:   "2026-10-01T14:00:00Z",
		BuildNumber: "100",
		GoVersion:   "go1.24.0",
		OS:          "linux",
		Arch:        "amd64",
	}
	h := NewHandler(&mocks.MockNotificationSender{}, nil, buildInfo)

	rec := serve(t, h.VersionHandler, "/version")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp system.VersionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, system.VersionResponse{
		Version:     "v1.4.0",
		Commit:      "abc1234",
		BuildDate:   "2026-10-01T14:00:00Z",
		BuildNumber: "100",
		GoVersion:   "go1.24.0",
		Platform:    "linux/amd64",
	}, resp)
}
