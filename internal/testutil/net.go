// Package testutil 여러 패키지의 테스트가 함께 쓰는 헬퍼입니다.
package testutil

import (
	"fmt"
	"net"
	"testing"
	"time"
)

// FreePort 지금 바인딩 가능한 로컬 TCP 포트를 반환합니다.
func FreePort(tb testing.TB) int {
	tb.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		tb.Fatalf("빈 포트 확보 실패: %v", err)
	}
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port
}

// WaitForServer port에 TCP 연결이 될 때까지 기다립니다.
func WaitForServer(port int, timeout time.Duration) error {
	addr := fmt.Sprintf("127.0.0.1:%d", port)

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 100*time.Millisecond)
		if err == nil {
			return conn.Close()
		}
		time.Sleep(10 * time.Millisecond)
	}
	return fmt.Errorf("%s 포트가 %v 안에 열리지 않았습니다", addr, timeout)
}
