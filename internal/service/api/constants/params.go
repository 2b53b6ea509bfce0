package constants

// URL 파라미터 키 상수입니다.
const (
	// QueryParamSearch 오퍼 검색어 쿼리 파라미터 키
	QueryParamSearch = "q"

	// PathParamProductID 비교 상품 ID 경로 파라미터 키
	PathParamProductID = "id"
)

// HTTP 헤더 키 상수입니다.
const (
	// RetryAfter 속도 제한 시 재시도 대기 시간(초)을 알리는 헤더
	RetryAfter = "Retry-After"
)

// SensitiveQueryParams 로그 기록 시 마스킹 처리해야 할 쿼리 파라미터 목록입니다.
var SensitiveQueryParams = []string{
	"password",
	"phone",
	"token",
	"access_token",
	"secret",
}
