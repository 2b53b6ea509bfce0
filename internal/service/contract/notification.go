package contract

import (
	"context"
	"strings"
)

// Notification 알림 채널로 전달되는 단일 메시지입니다.
type Notification struct {
	NotifierID NotifierID

	// Recipient WhatsApp 채널의 E.164 수신 번호입니다. Telegram 채널은 설정된 채팅방으로 보내므로 무시합니다.
	Recipient string

	Title         string
	Message       string
	ErrorOccurred bool
}

func (n *Notification) Validate() error {
	if strings.TrimSpace(n.Message) == "" {
		return ErrMessageRequired
	}
	return nil
}

// NotificationSender 알림 발송 요청을 받는 인터페이스입니다.
//
// 모든 메서드는 요청이 채널의 발송 큐에 등록되면 nil을 반환합니다. 실제 전송 결과와는 무관합니다.
type NotificationSender interface {
	// Notify n.NotifierID 채널로 발송을 요청합니다.
	Notify(ctx context.Context, n Notification) error

	// NotifyDefault 기본(운영자) 채널로 메시지를 보냅니다.
	NotifyDefault(message string) error

	// NotifyDefaultWithError 기본 채널로 오류 알림을 보냅니다.
	NotifyDefaultWithError(message string) error
}

// NotificationHealthChecker 알림 서비스 상태를 확인합니다.
type NotificationHealthChecker interface {
	Health() error
}
