package constants

import "time"

// 서버 설정 기본값 상수입니다.
const (
	// DefaultRequestTimeout HTTP 요청 처리의 기본 타임아웃 시간입니다.
	// 오퍼 검색은 제휴 API를 동시에 호출하므로 제공자 타임아웃보다 충분히 길어야 합니다.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultMaxBodySize 요청 본문의 최대 크기 (16KB)
	// 구독 요청 본문은 수백 바이트 수준입니다.
	DefaultMaxBodySize = "16K"

	// DefaultReadHeaderTimeout HTTP 헤더 읽기 최대 대기 시간
	// 헤더를 매우 느리게 전송하는 Slowloris 공격을 방어합니다.
	DefaultReadHeaderTimeout = 10 * time.Second

	DefaultReadTimeout  = 15 * time.Second
	DefaultWriteTimeout = 45 * time.Second
	DefaultIdleTimeout  = 120 * time.Second

	// DefaultRateLimitPerSecond 설정이 비어 있을 때 적용하는 IP별 초당 요청 수
	DefaultRateLimitPerSecond = 10

	// DefaultRateLimitBurst 설정이 비어 있을 때 적용하는 IP별 버스트 허용량
	DefaultRateLimitBurst = 20

	// ShutdownTimeout Graceful Shutdown 시 최대 대기 시간
	ShutdownTimeout = 5 * time.Second
)
