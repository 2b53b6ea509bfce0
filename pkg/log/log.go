// Package log 애플리케이션 전역에서 사용하는 구조화 로깅 기능을 제공합니다.
//
// logrus를 기반으로 하며, 모든 로그에 component 필드를 부여하여
// 어느 서비스(alert, offers, api 등)에서 발생한 로그인지 추적할 수 있도록 합니다.
package log

import (
	"github.com/sirupsen/logrus"
)

// componentKey 로그 발생 위치를 식별하는 필드 키
const componentKey = "component"

// StandardLogger 전역 logrus Logger를 반환합니다.
// cron, echo 등 외부 라이브러리에 로거를 주입할 때 사용합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

// SetDebugMode Debug 모드에 따라 로그 레벨을 설정합니다.
//   - Debug 모드: Trace 레벨 (모든 로그 출력)
//   - 운영 모드: Info 레벨
func SetDebugMode(debug bool) {
	if debug {
		logrus.SetLevel(TraceLevel)
	} else {
		logrus.SetLevel(InfoLevel)
	}
}

// SetLevel 전역 로그 레벨을 설정합니다.
func SetLevel(level Level) {
	logrus.SetLevel(level)
}

// WithFields 지정된 필드를 포함한 로그 Entry를 반환합니다.
func WithFields(fields Fields) *Entry {
	return logrus.WithFields(fields)
}

// WithComponent component 필드를 포함한 로그 Entry를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField(componentKey, component)
}

// WithComponentAndFields component 필드와 추가 필드를 포함한 로그 Entry를 반환합니다.
// 전달된 fields 맵은 변경하지 않습니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	merged := make(Fields, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged[componentKey] = component

	return logrus.WithFields(merged)
}
