package system

// HealthResponse GET /health 응답
//
// 의존성 중 하나라도 비정상이면 Status는 unhealthy가 되지만 HTTP 상태 코드는 항상 200입니다.
type HealthResponse struct {
	Status string `json:"status" example:"healthy"`
	// 서버 버전
	Version string `json:"version,omitempty" example:"v1.4.0"`
	// 가동 시간(초)
	Uptime int64 `json:"uptime" example:"3600"`
	// 확인 시각(UTC, RFC3339)
	CheckedAt string `json:"checked_at" example:"2026-10-17T09:00:00Z"`
	// 의존성 이름별 상태 (notification_service, storage)
	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
}

// DependencyStatus 의존성 하나의 상태
type DependencyStatus struct {
	Status string `json:"status" example:"healthy"`
	// 저장소 Ping 소요 시간(ms), 알림 서비스는 생략
	LatencyMs int64 `json:"latency_ms,omitempty" example:"5"`
	// 정상 메시지 또는 실패 원인
	Message string `json:"message,omitempty" example:"정상 작동 중"`
}
