// Package service 서버를 구성하는 장기 실행 서비스의 공통 인터페이스를 정의합니다.
package service

import (
	"context"
	"sync"
)

// Service serviceStopCtx가 취소될 때까지 실행되는 서비스입니다.
//
// Start는 즉시 반환되어야 하며, 서비스가 완전히 종료되면 serviceStopWG.Done()을 한 번 호출합니다.
// 시작에 실패한 경우에도 반환 전에 Done()을 호출합니다.
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
