// Package notifier 알림 채널 구현체가 공유하는 발송 큐와 워커 루프를 제공합니다.
package notifier

import (
	"context"

	"github.com/darkkaiser/linkcompra-server/internal/service/contract"
)

const component = "notification.notifier"

// Notifier 하나의 알림 채널(WhatsApp 발신 번호, Telegram 봇 등)입니다.
type Notifier interface {
	ID() contract.NotifierID

	// Run 큐에 쌓인 요청을 꺼내 실제로 전송합니다. ctx가 취소되거나 Close될 때까지 블로킹됩니다.
	Run(ctx context.Context)

	// Send 요청을 발송 큐에 등록합니다. 실제 전송은 Run 고루틴이 비동기로 수행합니다.
	Send(ctx context.Context, n contract.Notification) error

	Close()
	Done() <-chan struct{}
}
