package fetcher

import (
	"errors"
	"io"
	"net/http"
	"sync"
)

const (
	// DefaultMaxBytes 소매점 상품 페이지 하나의 본문 상한입니다.
	DefaultMaxBytes = 8 * 1024 * 1024

	maxDrainBytes = 64 * 1024
)

var drainBufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 32*1024)
		return &b
	},
}

// drainAndCloseBody 커넥션 재사용을 위해 남은 본문을 일정량까지 읽어 버리고 닫습니다.
func drainAndCloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}
	defer body.Close()

	bufPtr := drainBufPool.Get().(*[]byte)
	defer drainBufPool.Put(bufPtr)

	_, _ = io.CopyBuffer(io.Discard, io.LimitReader(body, maxDrainBytes), *bufPtr)
}

type maxBytesReader struct {
	rc    io.ReadCloser
	limit int64
}

func (r *maxBytesReader) Read(p []byte) (int, error) {
	n, err := r.rc.Read(p)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return n, newErrResponseBodyTooLarge(r.limit)
		}
	}
	return n, err
}

func (r *maxBytesReader) Close() error { return r.rc.Close() }

// MaxBytesFetcher 응답 본문 크기를 제한합니다.
type MaxBytesFetcher struct {
	delegate Fetcher
	limit    int64
}

var _ Fetcher = (*MaxBytesFetcher)(nil)

// NewMaxBytesFetcher limit이 0 이하이면 DefaultMaxBytes를 사용합니다.
func NewMaxBytesFetcher(delegate Fetcher, limit int64) *MaxBytesFetcher {
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	return &MaxBytesFetcher{delegate: delegate, limit: limit}
}

// Do Content-Length가 상한을 넘으면 본문을 읽지 않고 실패합니다.
// 길이를 알 수 없는 응답은 읽는 도중 상한을 넘는 순간 실패합니다.
func (f *MaxBytesFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	if resp.ContentLength > f.limit {
		drainAndCloseBody(resp.Body)
		return nil, newErrResponseBodyTooLarge(f.limit)
	}

	resp.Body = &maxBytesReader{
		rc:    http.MaxBytesReader(nil, resp.Body, f.limit),
		limit: f.limit,
	}

	return resp, nil
}
