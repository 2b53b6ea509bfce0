// Package validation 설정 파일과 API 입력값 검증에 사용하는 함수를 모아 둡니다.
//
// 모든 함수는 유효하지 않은 입력에 대해 원인을 설명하는 error를 반환합니다.
package validation
