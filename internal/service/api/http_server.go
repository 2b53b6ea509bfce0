package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/darkkaiser/linkcompra-server/internal/service/api/constants"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/handler"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/httputil"
	appmiddleware "github.com/darkkaiser/linkcompra-server/internal/service/api/middleware"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
)

// HTTPServerConfig HTTP 서버 생성에 필요한 설정을 정의합니다.
type HTTPServerConfig struct {
	// Debug Echo 프레임워크의 디버그 모드 활성화 여부
	Debug bool

	// EnableHSTS HTTPS 서버일 때 Strict-Transport-Security 헤더를 추가합니다.
	EnableHSTS bool

	// AllowOrigins CORS에서 허용할 Origin 목록
	AllowOrigins []string

	// RequestTimeout 각 HTTP 요청의 최대 처리 시간 (0이면 기본값 적용)
	RequestTimeout time.Duration

	// RateLimitEnabled false이면 IP별 요청 제한을 적용하지 않습니다.
	RateLimitEnabled bool

	// RateLimitPerSecond, RateLimitBurst 0이면 기본값을 적용합니다.
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// NewHTTPServer 설정된 미들웨어를 포함한 Echo 인스턴스를 생성합니다.
//
// 미들웨어는 다음 순서로 적용됩니다 (순서가 중요합니다):
//
//  1. PanicRecovery - 다른 미들웨어의 panic까지 복구하도록 가장 먼저 적용
//  2. RequestID - 로그에 request_id가 포함되도록 로깅보다 먼저 적용
//  3. Server 헤더 제거 - 기술 스택 노출 방지
//  4. HTTPLogger - RateLimit/Timeout 이전에 위치하여 429/503 응답도 기록
//  5. RateLimit - IP별 요청 제한 (설정으로 비활성화 가능)
//  6. BodyLimit - 요청 본문 크기 제한 (초과 시 413)
//  7. Timeout - 요청 처리 시간 제한 (초과 시 503)
//  8. CORS
//  9. Secure - X-XSS-Protection, X-Content-Type-Options 등 보안 헤더
//
// 라우트 설정은 포함되지 않으며, 반환된 Echo 인스턴스에 별도로 설정해야 합니다.
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	// Echo 내부 로그를 애플리케이션 로거로 통합합니다.
	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}

	e.HTTPErrorHandler = httputil.ErrorHandler
	e.Validator = handler.NewRequestValidator()

	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = constants.DefaultRequestTimeout
	}

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	e.Use(appmiddleware.HTTPLogger())
	if cfg.RateLimitEnabled {
		rps, burst := cfg.RateLimitPerSecond, cfg.RateLimitBurst
		if rps <= 0 {
			rps = constants.DefaultRateLimitPerSecond
		}
		if burst <= 0 {
			burst = constants.DefaultRateLimitBurst
		}
		e.Use(appmiddleware.RateLimit(rps, burst))
	}
	e.Use(middleware.BodyLimit(constants.DefaultMaxBodySize))
	e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Timeout: timeout,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	}))

	secureConfig := middleware.DefaultSecureConfig
	if cfg.EnableHSTS {
		secureConfig.HSTSMaxAge = 31536000
	}
	e.Use(middleware.SecureWithConfig(secureConfig))

	return e
}
