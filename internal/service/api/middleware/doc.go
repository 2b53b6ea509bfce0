// Package middleware LinkCompra API 서버가 Echo에 등록하는 미들웨어 모음입니다.
//
// 서버 구성 시 등록 순서:
//
//	PanicRecovery -> RequestID -> HTTPLogger -> RateLimit(선택) -> BodyLimit -> ContextTimeout -> CORS -> Secure
//
// ValidateContentType은 전역이 아니라 JSON 본문을 받는 v1 POST 라우트에만 붙습니다.
// HTTPLogger는 SensitiveQueryParams에 해당하는 쿼리 값을 마스킹해서 기록합니다.
package middleware
