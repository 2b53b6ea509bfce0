package constants

// GET /health 응답 값
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"

	// dependencies 맵의 키
	DependencyNotificationService = "notification_service"
	DependencyStorage             = "storage"

	MsgDepStatusHealthy = "정상 작동 중"
)
