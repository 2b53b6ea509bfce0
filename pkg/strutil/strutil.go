// Package strutil 문자열 정규화와 로그용 마스킹 함수를 제공합니다.
package strutil

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// "<" 다음에 영문자가 오는 경우만 태그로 본다. "3 < 5"는 유지된다.
var htmlTagRegexp = regexp.MustCompile(`</?([a-zA-Z]+)[^>]*>`)

// NormalizeSpaces 앞뒤 공백을 제거하고 연속된 공백을 하나로 줄입니다.
func NormalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitAndTrim 구분자로 나눈 뒤 공백을 제거하고 빈 항목은 버립니다. 결과가 없으면 nil입니다.
func SplitAndTrim(s, sep string) []string {
	var out []string
	for _, tok := range strings.Split(s, sep) {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// RemoveAccents 결합 문자(Mn)를 제거합니다. "Câmera Sem Fio" -> "Camera Sem Fio"
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// MaskSensitiveData 토큰, 키 등을 로그에 남길 때 앞 4자(길면 뒤 4자도)만 노출합니다.
func MaskSensitiveData(data string) string {
	switch {
	case data == "":
		return ""
	case len(data) <= 3:
		return "***"
	case len(data) <= 12:
		return data[:4] + "***"
	default:
		return data[:4] + "***" + data[len(data)-4:]
	}
}

// StripHTMLTags 태그를 제거하고 HTML 엔티티를 해제합니다.
func StripHTMLTags(s string) string {
	return html.UnescapeString(htmlTagRegexp.ReplaceAllString(s, ""))
}

// Truncate 룬 단위로 최대 n자까지 자르고, 잘린 경우 "…"을 붙입니다.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
