// Package fetcher 소매점 페이지 수집에 쓰이는 HTTP 클라이언트 체인입니다.
//
// 기본 체인은 RetryFetcher -> MaxBytesFetcher -> HTTPFetcher 순서로 요청을 위임합니다.
package fetcher

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
)

const component = "fetcher"

// Fetcher HTTP 요청을 수행합니다.
//
// 반환된 응답의 Body는 호출자가 닫아야 합니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Get url로 GET 요청을 보냅니다.
func Get(ctx context.Context, f Fetcher, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("요청 생성 실패: 잘못된 URL (%s)", url))
	}

	resp, err := f.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	return resp, nil
}

// FetchHTMLDocument 페이지를 가져와 goquery 문서로 파싱합니다.
// Content-Type의 charset(ISO-8859-1 등)을 UTF-8로 변환합니다.
func FetchHTMLDocument(ctx context.Context, f Fetcher, url string) (*goquery.Document, error) {
	resp, err := Get(ctx, f, url)
	if err != nil {
		if apperrors.UnderlyingType(err) != apperrors.Unknown {
			return nil, err
		}
		return nil, apperrors.Wrap(err, apperrors.Unavailable, fmt.Sprintf("HTML 페이지(%s) 요청 중 네트워크 에러가 발생했습니다", url))
	}
	defer resp.Body.Close()

	if err := CheckResponseStatus(resp); err != nil {
		return nil, err
	}

	utf8Reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, fmt.Sprintf("페이지(%s)의 인코딩 변환이 실패하였습니다", url))
	}

	doc, err := goquery.NewDocumentFromReader(utf8Reader)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, fmt.Sprintf("불러온 페이지(%s)의 HTML 파싱이 실패하였습니다", url))
	}

	return doc, nil
}
