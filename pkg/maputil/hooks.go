package maputil

import (
	"os"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

var (
	durationType = reflect.TypeOf(time.Duration(0))

	// envRefPattern ${NAME} 형태의 환경 변수 참조
	envRefPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)
)

// expandEnvHookFunc 문자열 값의 ${NAME}을 환경 변수 값으로 치환합니다.
// 제휴 API 토큰 같은 비밀 값을 설정 파일 밖에 두기 위해 사용합니다. 정의되지 않은 변수는 그대로 둡니다.
func expandEnvHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}

		s := reflect.ValueOf(data).String()
		if !strings.Contains(s, "${") {
			return data, nil
		}

		return envRefPattern.ReplaceAllStringFunc(s, func(ref string) string {
			name := ref[2 : len(ref)-1]
			if v, ok := os.LookupEnv(name); ok {
				return v
			}
			return ref
		}), nil
	}
}

// stringToSliceHookFunc "eletronicos,informatica" -> []string. []byte 대상은 제외합니다.
func stringToSliceHookFunc(trimSpace bool) mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if k := t.Kind(); (k != reflect.Slice && k != reflect.Array) || t.Elem().Kind() == reflect.Uint8 {
			return data, nil
		}

		s := reflect.ValueOf(data).String()
		if s == "" {
			return []string{}, nil
		}

		parts := strings.Split(s, ",")
		if !trimSpace {
			return parts, nil
		}

		out := parts[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	}
}

// stringToDurationHookFunc "8s" -> time.Duration
//
// 해석할 수 없는 문자열은 그대로 넘겨서 mapstructure가 타입 오류를 보고하게 합니다.
func stringToDurationHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != durationType {
			return data, nil
		}

		if d, err := time.ParseDuration(strings.TrimSpace(reflect.ValueOf(data).String())); err == nil {
			return d, nil
		}
		return data, nil
	}
}
