// Package cronx 스케줄러와 설정 검증이 공유하는 Cron 표현식 파서를 제공합니다.
package cronx

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// StandardParser 초 단위를 포함한 6필드 형식과 Descriptor(@hourly, @every 1h 등)를 해석합니다.
//
//	"0 0 */1 * * *"  매시 정각
//	"0 30 */6 * * *" 6시간마다 30분
func StandardParser() cron.Parser {
	return cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}

// Validate 표현식이 StandardParser로 해석 가능한지 검사합니다.
func Validate(spec string) error {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return fmt.Errorf("Cron 표현식이 비어 있습니다")
	}
	if _, err := StandardParser().Parse(spec); err != nil {
		return fmt.Errorf("Cron 표현식 파싱 실패(spec=%q): %w", spec, err)
	}
	return nil
}
