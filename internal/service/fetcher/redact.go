package fetcher

import (
	"net/http"
	"net/url"
	"slices"
	"strings"
)

var (
	sensitiveQueryKeys = []string{
		"token", "key", "secret", "password", "signature", "sig",
		"access_token", "api_key", "apikey", "app_token", "client_secret",
	}

	sensitiveQuerySuffixes = []string{"_token", "_secret", "_key"}
)

// redactHeaders 인증 관련 헤더 값을 가립니다.
func redactHeaders(h http.Header) http.Header {
	if h == nil {
		return nil
	}

	masked := h.Clone()
	for _, key := range []string{"Authorization", "Proxy-Authorization", "Cookie", "Set-Cookie"} {
		if masked.Get(key) != "" {
			masked.Set(key, "***")
		}
	}
	return masked
}

// redactURL 로그에 남길 수 있도록 사용자 정보와 민감한 쿼리 값을 가립니다.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	ru := *u
	if u.User != nil {
		ru.User = url.User("xxxxx")
	}

	if u.RawQuery != "" {
		query := ru.Query()
		for key := range query {
			if isSensitiveKey(key) {
				query.Set(key, "xxxxx")
			}
		}
		ru.RawQuery = query.Encode()
	}

	return ru.String()
}

func isSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	if slices.Contains(sensitiveQueryKeys, k) {
		return true
	}
	for _, suffix := range sensitiveQuerySuffixes {
		if strings.HasSuffix(k, suffix) {
			return true
		}
	}
	return false
}
