// Package mark 알림 메시지에 사용되는 이모지를 모아 둡니다.
package mark

type Mark string

const (
	PriceDrop Mark = "📉"
	BestPrice Mark = "🔥"
	Link      Mark = "🔗"
	Alert     Mark = "🚨"
	Info      Mark = "ℹ️"
)

// WithSpace 앞에 공백을 붙여 반환합니다. 빈 마크는 빈 문자열입니다.
func (m Mark) WithSpace() string {
	if m == "" {
		return ""
	}
	return " " + string(m)
}

func (m Mark) String() string { return string(m) }
