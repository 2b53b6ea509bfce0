package constants

// 로그의 component 필드 값
const (
	ComponentService = "api.service"

	// 핸들러
	ComponentSystemHandler = "api.handler.system"
	ComponentV1Handler     = "api.v1.handler"
	ComponentErrorHandler  = "api.error_handler"

	// 미들웨어
	ComponentMiddlewareHTTPLog       = "api.middleware.http_log"
	ComponentMiddlewareRateLimit     = "api.middleware.rate_limit"
	ComponentMiddlewarePanicRecovery = "api.middleware.panic_recovery"
	ComponentMiddlewareContentType   = "api.middleware.content_type"
)
