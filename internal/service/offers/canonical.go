package offers

import (
	"net/url"
	"strings"
)

// trackingParams 같은 상품을 가리키는 URL에서 차이를 만드는 추적 파라미터입니다.
var trackingParams = map[string]bool{
	"tag":       true,
	"ref":       true,
	"ref_":      true,
	"matt_tool": true,
	"matt_word": true,
	"sourceid":  true,
	"affid":     true,
	"gclid":     true,
	"fbclid":    true,
	"smid":      true,
	"psc":       true,
}

// canonicalURL 중복 제거용 키입니다. 호스트는 소문자, 추적 파라미터와 fragment는 제거합니다.
// 파싱할 수 없으면 원본을 그대로 씁니다.
func canonicalURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return raw
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	path := strings.TrimRight(u.Path, "/")

	q := u.Query()
	for key := range q {
		lower := strings.ToLower(key)
		if trackingParams[lower] || strings.HasPrefix(lower, "utm_") {
			q.Del(key)
		}
	}

	out := strings.ToLower(u.Scheme) + "://" + host + path
	if encoded := q.Encode(); encoded != "" {
		out += "?" + encoded
	}
	return out
}
