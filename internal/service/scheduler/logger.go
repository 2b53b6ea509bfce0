package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"

	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
)

// cronLogger cron 내부 로그(패닉 복구, 실행 건너뜀 등)를 logrus로 남깁니다.
type cronLogger struct{}

var _ cron.Logger = cronLogger{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	applog.WithComponentAndFields(component, toFields(keysAndValues)).Debug("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	fields := toFields(keysAndValues)
	fields["error"] = err
	applog.WithComponentAndFields(component, fields).Error("cron: " + msg)
}

func toFields(keysAndValues []any) applog.Fields {
	fields := make(applog.Fields, len(keysAndValues)/2+1)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
