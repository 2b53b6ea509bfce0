package errors

import "strconv"

// ErrorType 에러의 분류입니다.
type ErrorType int

const (
	// Unknown 분류되지 않은 에러
	Unknown ErrorType = iota

	// Internal 내부 로직 오류
	Internal

	// System 디스크, 네트워크, 데이터베이스 등 인프라 오류
	System

	// Unauthorized 인증 실패
	Unauthorized

	// Forbidden 권한 부족
	Forbidden

	// InvalidInput 입력값 검증 실패
	InvalidInput

	// Conflict 중복 생성 등 리소스 충돌
	Conflict

	// NotFound 리소스 없음
	NotFound

	// ExecutionFailed 외부 API 호출, 스크래핑 등 작업 수행 실패
	ExecutionFailed

	// ParsingFailed HTML/JSON 등 데이터 해석 실패
	ParsingFailed

	// Timeout 시간 초과
	Timeout

	// Unavailable 일시적 사용 불가
	Unavailable
)

var errorTypeNames = [...]string{
	Unknown:         "Unknown",
	Internal:        "Internal",
	System:          "System",
	Unauthorized:    "Unauthorized",
	Forbidden:       "Forbidden",
	InvalidInput:    "InvalidInput",
	Conflict:        "Conflict",
	NotFound:        "NotFound",
	ExecutionFailed: "ExecutionFailed",
	ParsingFailed:   "ParsingFailed",
	Timeout:         "Timeout",
	Unavailable:     "Unavailable",
}

func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(errorTypeNames) {
		return "ErrorType(" + strconv.Itoa(int(t)) + ")"
	}
	return errorTypeNames[t]
}
