package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	_ "github.com/darkkaiser/linkcompra-server/docs"
	"github.com/darkkaiser/linkcompra-server/internal/config"
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/internal/pkg/version"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/constants"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/handler/system"
	v1 "github.com/darkkaiser/linkcompra-server/internal/service/api/v1"
	v1handler "github.com/darkkaiser/linkcompra-server/internal/service/api/v1/handler"
	"github.com/darkkaiser/linkcompra-server/internal/service/contract"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
)

// NotificationService 서버 오류 알림 발송과 헬스체크에 사용하는 알림 서비스입니다.
type NotificationService interface {
	contract.NotificationSender
	contract.NotificationHealthChecker
}

// Dependencies API 서비스가 핸들러에 주입하는 서비스 묶음입니다.
type Dependencies struct {
	Notification NotificationService

	// Storage nil이면 헬스체크에서 저장소 상태를 제외합니다.
	Storage contract.StoragePinger

	Subscriptions v1handler.SubscriptionService
	Offers        v1handler.OffersSearcher
	Products      contract.ProductRepository
}

func (d Dependencies) validate() error {
	if d.Notification == nil {
		return ErrNotificationSenderNotInitialized
	}

	missing := ""
	switch {
	case d.Subscriptions == nil:
		missing = "Subscriptions"
	case d.Offers == nil:
		missing = "Offers"
	case d.Products == nil:
		missing = "Products"
	}
	if missing != "" {
		return apperrors.Wrapf(ErrDependencyNotInitialized, apperrors.Internal, "필수 의존성 누락: %s", missing)
	}

	return nil
}

// Service LinkCompra HTTP API 서버의 생명주기를 관리합니다.
//
// Start로 시작하면 별도 고루틴에서 Echo 서버를 구동하고, 전달받은 context가 취소되면
// ShutdownTimeout 안에서 Graceful Shutdown을 수행한 뒤 WaitGroup을 해제합니다.
// 서버가 예기치 않게 종료되면 운영자 채널로 오류 알림을 보냅니다.
type Service struct {
	appConfig *config.AppConfig

	deps Dependencies

	buildInfo version.Info

	running   bool
	runningMu sync.Mutex
}

// NewService Service 인스턴스를 생성합니다.
func NewService(appConfig *config.AppConfig, deps Dependencies, buildInfo version.Info) *Service {
	if appConfig == nil {
		panic(constants.PanicMsgAppConfigRequired)
	}

	return &Service{
		appConfig: appConfig,

		deps: deps,

		buildInfo: buildInfo,
	}
}

// Start API 서비스를 시작합니다. 서버는 고루틴에서 실행되며 이 함수는 즉시 반환됩니다.
//
// 의존성이 누락된 경우 serviceStopWG를 해제하고 에러를 반환합니다.
// 이미 실행 중이면 경고만 남기고 nil을 반환합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if err := s.deps.validate(); err != nil {
		defer serviceStopWG.Done()
		return err
	}

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	e := s.setupServer()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer 핸들러를 생성하고 미들웨어와 라우트가 설정된 Echo 인스턴스를 반환합니다.
func (s *Service) setupServer() *echo.Echo {
	systemHandler := system.NewHandler(s.deps.Notification, s.deps.Storage, s.buildInfo)
	v1Handler := v1handler.NewHandler(s.deps.Subscriptions, s.deps.Offers, s.deps.Products)

	apiConfig := s.appConfig.API
	e := NewHTTPServer(HTTPServerConfig{
		Debug:              s.appConfig.Debug,
		EnableHSTS:         apiConfig.TLSServer,
		AllowOrigins:       apiConfig.CORS.AllowOrigins,
		RateLimitEnabled:   apiConfig.RateLimit.Enabled,
		RateLimitPerSecond: apiConfig.RateLimit.RequestsPerSecond,
		RateLimitBurst:     apiConfig.RateLimit.Burst,
	})

	RegisterRoutes(e, systemHandler)
	v1.RegisterRoutes(e, v1Handler)

	return e
}

// startHTTPServer 서버가 종료될 때까지 블로킹되며, 종료되면 done 채널을 닫습니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	apiConfig := s.appConfig.API
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": apiConfig.ListenPort,
		"tls":  apiConfig.TLSServer,
	}).Debug(constants.LogMsgServiceHTTPServerStarting)

	address := fmt.Sprintf(":%d", apiConfig.ListenPort)

	var err error
	if apiConfig.TLSServer {
		err = e.StartTLS(address, apiConfig.TLSCertFile, apiConfig.TLSKeyFile)
	} else {
		err = e.Start(address)
	}

	s.handleServerError(err)
}

// handleServerError http.ErrServerClosed는 정상 종료로 보고, 그 외 에러는 로깅 후 운영자에게 알립니다.
func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceHTTPServerStopped)
		return
	}

	message := constants.LogMsgServiceHTTPServerFatalError
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.API.ListenPort,
		"error": err,
	}).Error(message)

	if notifyErr := s.deps.Notification.NotifyDefaultWithError(fmt.Sprintf("%s\r\n\r\n%s", message, err)); notifyErr != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": notifyErr,
		}).Warn(constants.LogMsgServiceNotifyFailed)
	}
}

// waitForShutdown 종료 신호(또는 서버 조기 종료)를 기다린 뒤 서버를 정리합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)

	case <-httpServerDone:
		// 포트 바인딩 실패 등으로 이미 종료되었으므로 Shutdown을 호출하지 않습니다.
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)

		s.cleanup()

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgServiceHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}
