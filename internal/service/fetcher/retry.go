package fetcher

import (
	"context"
	"crypto/x509"
	"errors"
	"math/rand/v2"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
)

const (
	maxAllowedRetries = 10

	defaultMinRetryDelay = time.Second
	defaultMaxRetryDelay = 30 * time.Second
)

// RetryFetcher 일시적인 실패(네트워크 오류, 408, 429, 5xx)를 지수 백오프로 재시도합니다.
//
// 지연 시간은 minRetryDelay * 2^(n-1)을 maxRetryDelay로 자른 값 안에서 무작위로 고르며(Full Jitter),
// 서버가 Retry-After를 보내면 그 값을 따릅니다. Retry-After가 maxRetryDelay보다 길면 즉시 포기합니다.
// 멱등하지 않은 메서드(POST 등)는 재시도하지 않습니다.
type RetryFetcher struct {
	delegate Fetcher

	maxRetries    int
	minRetryDelay time.Duration
	maxRetryDelay time.Duration
}

var _ Fetcher = (*RetryFetcher)(nil)

func NewRetryFetcher(delegate Fetcher, maxRetries int, minRetryDelay, maxRetryDelay time.Duration) *RetryFetcher {
	maxRetries = max(0, min(maxRetries, maxAllowedRetries))

	if minRetryDelay <= 0 {
		minRetryDelay = defaultMinRetryDelay
	}
	if maxRetryDelay <= 0 {
		maxRetryDelay = defaultMaxRetryDelay
	}
	if maxRetryDelay < minRetryDelay {
		maxRetryDelay = minRetryDelay
	}

	return &RetryFetcher{
		delegate:      delegate,
		maxRetries:    maxRetries,
		minRetryDelay: minRetryDelay,
		maxRetryDelay: maxRetryDelay,
	}
}

func (f *RetryFetcher) Do(req *http.Request) (*http.Response, error) {
	effectiveMaxRetries := f.maxRetries
	if !isIdempotentMethod(req.Method) {
		effectiveMaxRetries = 0
	}
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		effectiveMaxRetries = 0
	}

	var lastErr error
	var lastResp *http.Response

	for attempt := 0; attempt <= effectiveMaxRetries; attempt++ {
		if attempt > 0 {
			delay, err := f.nextDelay(attempt, lastResp)
			if err != nil {
				if lastResp != nil {
					drainAndCloseBody(lastResp.Body)
				}
				return nil, err
			}

			fields := applog.Fields{
				"url":         redactURL(req.URL),
				"retry":       attempt,
				"max_retries": effectiveMaxRetries,
				"delay":       delay.String(),
			}
			if lastErr != nil {
				fields["error"] = lastErr.Error()
			}
			if lastResp != nil {
				fields["status_code"] = lastResp.StatusCode
				drainAndCloseBody(lastResp.Body)
			}
			applog.WithComponentAndFields(component, fields).Warn("재시도 대기 중: 일시적 오류로 인해 요청을 다시 보냅니다")

			timer := time.NewTimer(delay)
			select {
			case <-req.Context().Done():
				timer.Stop()
				return nil, req.Context().Err()
			case <-timer.C:
			}

			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, newErrGetBodyFailed(err)
				}
				req = req.Clone(req.Context())
				req.Body = body
			}
		}

		resp, err := f.delegate.Do(req)
		lastErr, lastResp = err, nil

		if err != nil {
			if resp != nil {
				drainAndCloseBody(resp.Body)
			}
			if req.Context().Err() != nil || !isRetriable(err) {
				return nil, err
			}
			continue
		}

		if !isRetriableStatus(resp.StatusCode) {
			return resp, nil
		}
		lastResp = resp
	}

	// 마지막 시도까지 재시도 대상 응답을 받은 경우
	if lastResp != nil {
		defer drainAndCloseBody(lastResp.Body)

		statusErr := newHTTPStatusError(lastResp)
		if lastResp.Request == nil {
			statusErr.URL = redactURL(req.URL)
		}
		return nil, statusErr
	}

	return nil, newErrMaxRetriesExceeded(lastErr)
}

// nextDelay attempt번째 재시도 전 대기 시간을 계산합니다.
func (f *RetryFetcher) nextDelay(attempt int, lastResp *http.Response) (time.Duration, error) {
	if lastResp != nil {
		if retryAfter, ok := parseRetryAfter(lastResp.Header.Get("Retry-After")); ok {
			if retryAfter > f.maxRetryDelay {
				return 0, newErrRetryAfterExceeded(retryAfter.String(), f.maxRetryDelay.String())
			}
			return retryAfter, nil
		}
	}

	backoff := f.minRetryDelay << (attempt - 1)
	if backoff > f.maxRetryDelay || backoff <= 0 {
		backoff = f.maxRetryDelay
	}

	delay := time.Duration(rand.Int64N(int64(backoff) + 1))
	if delay < time.Millisecond {
		delay = f.minRetryDelay
	}
	return delay, nil
}

// isRetriableStatus 408, 429, 그리고 501/505/511을 제외한 5xx를 재시도합니다.
func isRetriableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	case http.StatusNotImplemented, http.StatusHTTPVersionNotSupported, http.StatusNetworkAuthenticationRequired:
		return false
	}
	return code >= 500
}

// isRetriable 전송 단계 오류 중 재시도해도 결과가 달라지지 않는 오류(인증서, 잘못된 URL 등)를 걸러냅니다.
func isRetriable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		msg := urlErr.Err.Error()
		if strings.Contains(msg, "stopped after 10 redirects") ||
			strings.Contains(msg, "unsupported protocol scheme") ||
			strings.Contains(msg, "invalid control character in URL") {
			return false
		}
	}

	var hostnameErr x509.HostnameError
	var unknownAuthorityErr x509.UnknownAuthorityError
	var certInvalidErr x509.CertificateInvalidError
	if errors.As(err, &hostnameErr) || errors.As(err, &unknownAuthorityErr) || errors.As(err, &certInvalidErr) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	switch apperrors.UnderlyingType(err) {
	case apperrors.InvalidInput, apperrors.NotFound, apperrors.Forbidden, apperrors.ExecutionFailed:
		return false
	}

	return true
}

func isIdempotentMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

// parseRetryAfter 초 단위 정수와 HTTP-date 형식을 모두 해석합니다.
func parseRetryAfter(value string) (time.Duration, bool) {
	if value == "" {
		return 0, false
	}

	if seconds, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		if seconds < 0 {
			return 0, false
		}
		return time.Duration(seconds) * time.Second, true
	}

	if date, err := http.ParseTime(value); err == nil {
		return max(time.Until(date), 0), true
	}

	return 0, false
}
