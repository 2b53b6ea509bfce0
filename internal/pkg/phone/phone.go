// Package phone 브라질 전화번호를 E.164 형식으로 정규화합니다.
package phone

import (
	"strings"

	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
)

const countryCode = "55"

var ErrInvalidPhone = apperrors.New(apperrors.InvalidInput, "유효하지 않은 전화번호입니다")

// NormalizeBR "+55 (11) 98765-4321", "11987654321", "5511987654321" 등을 "+5511987654321"로 변환합니다.
//
// 허용 형태는 DDD(11~99, 각 자리 0 제외) 뒤에 8자리 유선번호 또는 9로 시작하는 9자리 휴대폰 번호입니다.
func NormalizeBR(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	explicitCountry := strings.HasPrefix(s, "+")

	digits := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}
	d := string(digits)

	switch {
	case explicitCountry:
		rest, ok := strings.CutPrefix(d, countryCode)
		if !ok {
			return "", ErrInvalidPhone
		}
		d = rest
	case len(d) == 12 || len(d) == 13:
		rest, ok := strings.CutPrefix(d, countryCode)
		if !ok {
			return "", ErrInvalidPhone
		}
		d = rest
	}

	if !valid(d) {
		return "", ErrInvalidPhone
	}
	return "+" + countryCode + d, nil
}

func valid(national string) bool {
	if len(national) != 10 && len(national) != 11 {
		return false
	}
	if national[0] == '0' || national[1] == '0' {
		return false
	}
	if len(national) == 11 && national[2] != '9' {
		return false
	}
	return true
}

// Digits "+5511987654321" -> "5511987654321". WhatsApp Cloud API의 수신자 형식입니다.
func Digits(e164 string) string {
	return strings.TrimPrefix(e164, "+")
}

// Mask 국가 코드와 마지막 4자리만 남깁니다. "+5511987654321" -> "+55*******4321"
func Mask(e164 string) string {
	d := Digits(e164)
	if len(d) <= len(countryCode)+4 {
		return strings.Repeat("*", len(d))
	}
	return "+" + countryCode + strings.Repeat("*", len(d)-len(countryCode)-4) + d[len(d)-4:]
}
