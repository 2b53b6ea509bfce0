package middleware

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/darkkaiser/linkcompra-server/internal/service/api/constants"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
)

const (
	// maxVisitors 토큰 버킷을 유지하는 최대 IP 수
	maxVisitors = 10000

	// visitorIdleTTL 이 시간 동안 요청이 없던 IP는 용량이 찼을 때 우선 정리됩니다.
	visitorIdleTTL = 10 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitorTable IP별 토큰 버킷 테이블
type visitorTable struct {
	mu       sync.Mutex
	visitors map[string]*visitor

	limit rate.Limit
	burst int

	now func() time.Time
}

func newVisitorTable(requestsPerSecond float64, burst int) *visitorTable {
	return &visitorTable{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(requestsPerSecond),
		burst:    burst,
		now:      time.Now,
	}
}

// allow 요청을 허용하면 0을, 거부하면 다음 토큰까지 남은 시간을 반환합니다.
func (t *visitorTable) allow(ip string) (bool, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()

	v, ok := t.visitors[ip]
	if !ok {
		if len(t.visitors) >= maxVisitors {
			t.evictLocked(now)
		}
		v = &visitor{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.visitors[ip] = v
	}
	v.lastSeen = now

	r := v.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Second
	}
	if delay := r.DelayFrom(now); delay > 0 {
		// 예약을 취소해야 거부된 요청이 토큰을 소모하지 않습니다.
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// evictLocked 유휴 IP를 모두 제거하고, 그래도 가득 차 있으면 가장 오래전에 요청한 IP 하나를 제거합니다.
func (t *visitorTable) evictLocked(now time.Time) {
	var oldestIP string
	var oldest time.Time

	for ip, v := range t.visitors {
		if now.Sub(v.lastSeen) > visitorIdleTTL {
			delete(t.visitors, ip)
			continue
		}
		if oldestIP == "" || v.lastSeen.Before(oldest) {
			oldestIP, oldest = ip, v.lastSeen
		}
	}

	if len(t.visitors) >= maxVisitors && oldestIP != "" {
		delete(t.visitors, oldestIP)
	}
}

// retryAfter Retry-After 헤더 값(초, 최소 1)
func retryAfter(d time.Duration) string {
	secs := int64((d + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.FormatInt(secs, 10)
}

// RateLimit IP별 토큰 버킷 미들웨어입니다.
//
// 초과 요청은 429와 Retry-After 헤더를 받습니다. 서버 인스턴스마다 독립적으로 제한합니다.
// requestsPerSecond 또는 burst가 0 이하이면 panic이 발생합니다.
func RateLimit(requestsPerSecond float64, burst int) echo.MiddlewareFunc {
	if requestsPerSecond <= 0 {
		panic(fmt.Sprintf(constants.PanicMsgRateLimitRequestsPerSecondInvalid, requestsPerSecond))
	}
	if burst <= 0 {
		panic(fmt.Sprintf(constants.PanicMsgRateLimitBurstInvalid, burst))
	}

	table := newVisitorTable(requestsPerSecond, burst)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			ok, wait := table.allow(ip)
			if !ok {
				applog.WithComponentAndFields(constants.ComponentMiddlewareRateLimit, applog.Fields{
					"remote_ip": ip,
					"path":      c.Request().URL.Path,
					"method":    c.Request().Method,
					"wait":      wait.String(),
				}).Warn(constants.LogMsgRateLimitExceeded)

				c.Response().Header().Set(constants.RetryAfter, retryAfter(wait))

				return ErrRateLimitExceeded
			}

			return next(c)
		}
	}
}
