package catalog

import (
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
)

var ErrInvalidEAN = apperrors.New(apperrors.InvalidInput, "유효하지 않은 EAN/GTIN 코드입니다")

// NormalizeEAN 숫자 외 문자를 제거하고 EAN-8, EAN-13, GTIN-14의 검증 숫자를 확인합니다.
func NormalizeEAN(s string) (string, error) {
	digits := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}

	switch len(digits) {
	case 8, 13, 14:
	default:
		return "", ErrInvalidEAN
	}

	if checkDigit(digits[:len(digits)-1]) != digits[len(digits)-1]-'0' {
		return "", ErrInvalidEAN
	}
	return string(digits), nil
}

// checkDigit GS1 mod-10: 오른쪽부터 홀수 위치에 3, 짝수 위치에 1을 곱합니다.
func checkDigit(body []byte) byte {
	sum := 0
	for i := len(body) - 1; i >= 0; i-- {
		n := int(body[i] - '0')
		if (len(body)-1-i)%2 == 0 {
			n *= 3
		}
		sum += n
	}
	return byte((10 - sum%10) % 10)
}
