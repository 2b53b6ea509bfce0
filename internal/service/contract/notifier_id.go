package contract

// NotifierID 알림 채널의 고유 ID입니다.
// config, notification, alert 패키지가 함께 참조하므로 순환 참조를 피하기 위해 여기에 둡니다.
type NotifierID string

func (id NotifierID) String() string { return string(id) }
