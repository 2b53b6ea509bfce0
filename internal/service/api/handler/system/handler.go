// Package system 시스템 엔드포인트 핸들러를 제공합니다.
//
// 헬스체크, 버전 정보 등 인증이 필요 없는 시스템 수준의 API를 처리합니다.
package system

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/darkkaiser/linkcompra-server/internal/pkg/version"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/constants"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/model/system"
	"github.com/darkkaiser/linkcompra-server/internal/service/contract"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
)

// storagePingTimeout 헬스체크 요청 하나가 저장소 응답을 기다리는 최대 시간
const storagePingTimeout = 3 * time.Second

// Handler 시스템 엔드포인트 핸들러 (헬스체크, 버전 정보)
type Handler struct {
	healthChecker contract.NotificationHealthChecker

	// storage nil이면 헬스체크 결과에서 제외합니다.
	storage contract.StoragePinger

	buildInfo version.Info

	serverStartTime time.Time
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(healthChecker contract.NotificationHealthChecker, storage contract.StoragePinger, buildInfo version.Info) *Handler {
	if healthChecker == nil {
		panic(constants.PanicMsgNotificationSenderRequired)
	}

	return &Handler{
		healthChecker: healthChecker,
		storage:       storage,

		buildInfo: buildInfo,

		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler godoc
// @Summary 서버 헬스체크
// @Description 서버와 외부 의존성(알림 서비스, 저장소)의 상태를 확인합니다.
// @Description 인증 없이 호출 가능하며, 모니터링 시스템에서 사용됩니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse "헬스체크 결과"
// @Router /health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentSystemHandler, applog.Fields{
		"endpoint":  "/health",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgHealthCheck)

	deps := map[string]system.DependencyStatus{
		constants.DependencyNotificationService: h.notificationStatus(),
	}
	if h.storage != nil {
		deps[constants.DependencyStorage] = h.storageStatus(c.Request().Context())
	}

	// 하나라도 unhealthy면 전체 상태를 unhealthy로 설정
	serverStatus := constants.HealthStatusHealthy
	for _, dep := range deps {
		if dep.Status != constants.HealthStatusHealthy {
			serverStatus = constants.HealthStatusUnhealthy
			break
		}
	}

	return c.JSON(http.StatusOK, system.HealthResponse{
		Status:       serverStatus,
		Version:      h.buildInfo.Version,
		Uptime:       int64(time.Since(h.serverStartTime).Seconds()),
		CheckedAt:    time.Now().UTC().Format(time.RFC3339),
		Dependencies: deps,
	})
}

func (h *Handler) notificationStatus() system.DependencyStatus {
	if err := h.healthChecker.Health(); err != nil {
		return system.DependencyStatus{
			Status:  constants.HealthStatusUnhealthy,
			Message: err.Error(),
		}
	}
	return system.DependencyStatus{
		Status:  constants.HealthStatusHealthy,
		Message: constants.MsgDepStatusHealthy,
	}
}

func (h *Handler) storageStatus(ctx context.Context) system.DependencyStatus {
	ctx, cancel := context.WithTimeout(ctx, storagePingTimeout)
	defer cancel()

	start := time.Now()
	err := h.storage.Ping(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return system.DependencyStatus{
			Status:    constants.HealthStatusUnhealthy,
			LatencyMs: latency,
			Message:   err.Error(),
		}
	}
	return system.DependencyStatus{
		Status:    constants.HealthStatusHealthy,
		LatencyMs: latency,
		Message:   constants.MsgDepStatusHealthy,
	}
}

// VersionHandler godoc
// @Summary 서버 버전 정보
// @Description 서버의 버전, Git 커밋 해시, 빌드 날짜, 빌드 번호, Go 버전을 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse "버전 정보"
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentSystemHandler, applog.Fields{
		"endpoint":  "/version",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgVersionInfo)

	resp := system.VersionResponse{
		Version:     h.buildInfo.Version,
		Commit:      h.buildInfo.Commit,
		BuildDate:   h.buildInfo.BuildDate,
		BuildNumber: h.buildInfo.BuildNumber,
		GoVersion:   h.buildInfo.GoVersion,
	}
	if h.buildInfo.OS != "" {
		resp.Platform = h.buildInfo.OS + "/" + h.buildInfo.Arch
	}

	return c.JSON(http.StatusOK, resp)
}
