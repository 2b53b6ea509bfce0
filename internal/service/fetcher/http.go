package fetcher

import (
	"net/http"
	"time"
)

const (
	defaultTimeout = 30 * time.Second

	defaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"
	defaultAcceptLanguage = "pt-BR,pt;q=0.9,en;q=0.6"
	defaultAccept         = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// HTTPFetcher 브라우저 헤더를 채워 요청하는 기본 Fetcher입니다.
// 소매점들이 봇 요청을 차단하거나 다른 지역 가격을 보여주지 않도록 pt-BR 로케일을 요청합니다.
type HTTPFetcher struct {
	client *http.Client
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher timeout이 0 이하이면 30초를 사용합니다.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 8

	return &HTTPFetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Do 비어 있는 User-Agent, Accept, Accept-Language 헤더를 기본값으로 채운 뒤 요청합니다.
func (h *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", defaultUserAgent)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", defaultAccept)
	}
	if req.Header.Get("Accept-Language") == "" {
		req.Header.Set("Accept-Language", defaultAcceptLanguage)
	}

	return h.client.Do(req)
}
