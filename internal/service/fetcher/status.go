package fetcher

import (
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
)

// maxBodySnippetBytes 오류 메시지에 포함할 응답 본문 최대 길이입니다.
const maxBodySnippetBytes = 1024

// HTTPStatusError 2xx가 아닌 응답을 표현합니다.
//
// Cause에는 상태 코드에 따라 분류된 apperrors.AppError가 들어 있어
// apperrors.Is(err, apperrors.Unavailable) 같은 분류 검사가 그대로 동작합니다.
type HTTPStatusError struct {
	StatusCode  int
	Status      string
	URL         string
	Header      http.Header
	BodySnippet string

	Cause error
}

func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("HTTP %d (%s)", e.StatusCode, e.Status)
	if e.URL != "" {
		msg += " URL: " + e.URL
	}
	if e.BodySnippet != "" {
		msg += ", Body: " + e.BodySnippet
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *HTTPStatusError) Unwrap() error { return e.Cause }

// StatusErrorType 상태 코드를 오류 분류로 변환합니다.
// 5xx와 429는 일시적 장애(Unavailable), 404는 NotFound, 그 외는 ExecutionFailed입니다.
func StatusErrorType(statusCode int) apperrors.ErrorType {
	switch {
	case statusCode >= 500 || statusCode == http.StatusTooManyRequests:
		return apperrors.Unavailable
	case statusCode == http.StatusNotFound:
		return apperrors.NotFound
	default:
		return apperrors.ExecutionFailed
	}
}

// CheckResponseStatus 2xx 응답이면 nil을 반환합니다.
// 그 외에는 본문 앞부분을 읽어 HTTPStatusError를 만듭니다. 본문은 호출자가 닫아야 합니다.
func CheckResponseStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	return newHTTPStatusError(resp)
}

func newHTTPStatusError(resp *http.Response) *HTTPStatusError {
	var snippet string
	if resp.Body != nil {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySnippetBytes))
		snippet = string(b)
	}

	var rawURL string
	if resp.Request != nil {
		rawURL = redactURL(resp.Request.URL)
	}

	return &HTTPStatusError{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		URL:         rawURL,
		Header:      redactHeaders(resp.Header),
		BodySnippet: snippet,
		Cause:       apperrors.New(StatusErrorType(resp.StatusCode), fmt.Sprintf("HTTP 요청이 실패했습니다. 상태 코드: %s", resp.Status)),
	}
}
