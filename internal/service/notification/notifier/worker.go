package notifier

import (
	"context"
	"time"

	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
)

const (
	// DefaultDrainTimeout 종료 시 큐에 남은 알림을 처리하는 최대 시간입니다.
	DefaultDrainTimeout = 60 * time.Second

	// pendingSendsWaitTimeout 종료 직전 진입한 Send 호출이 끝나기를 기다리는 최대 시간입니다.
	pendingSendsWaitTimeout = 6 * time.Second
)

// SendFunc 큐에서 꺼낸 요청 하나를 실제 채널로 전송합니다.
type SendFunc func(ctx context.Context, req *Request)

// RunSendLoop 큐의 요청을 순서대로 전송하는 워커 루프입니다.
//
// ctx가 취소되거나 Base가 닫히면 남은 요청을 drainTimeout 안에서 최대한 발송한 뒤 반환합니다.
// 개별 요청의 패닉은 해당 건만 건너뛰고, 루프 자체의 패닉은 Base를 닫아 더 이상 요청을 받지 않게 합니다.
func RunSendLoop(ctx context.Context, b *Base, drainTimeout time.Duration, send SendFunc) {
	defer func() {
		if r := recover(); r != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"notifier_id": b.ID(),
				"panic":       r,
			}).Error("발송 루프 비정상 종료: 워커 고루틴 패닉 발생")

			// 워커가 죽은 채로 요청을 계속 받으면 큐가 찰 때까지 알림이 조용히 유실된다.
			b.Close()
		}
	}()

	for {
		select {
		case req := <-b.NotificationC():
			sendSafely(ctx, b, req, send)
			continue

		case <-ctx.Done():
		case <-b.Done():
		}

		drain(b, drainTimeout, send)
		return
	}
}

func sendSafely(ctx context.Context, b *Base, req *Request, send SendFunc) {
	defer func() {
		if r := recover(); r != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"notifier_id": b.ID(),
				"title":       req.Notification.Title,
				"panic":       r,
			}).Error("알림 처리 실패: 발송 중 패닉 발생 (해당 건 스킵)")
		}
	}()

	// 요청자의 Context가 이미 끝났더라도 서비스가 살아 있으면 발송은 계속한다.
	sendCtx := req.Ctx
	if sendCtx == nil || sendCtx.Err() != nil {
		sendCtx = ctx
	}

	send(sendCtx, req)
}

func drain(b *Base, drainTimeout time.Duration, send SendFunc) {
	if drainTimeout <= 0 {
		drainTimeout = DefaultDrainTimeout
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	pendingDone := make(chan struct{})
	go func() {
		b.WaitForPendingSends()
		close(pendingDone)
	}()

	waitTimer := time.NewTimer(pendingSendsWaitTimeout)
	defer waitTimer.Stop()

	select {
	case <-pendingDone:
	case <-waitTimer.C:
		applog.WithComponentAndFields(component, applog.Fields{
			"notifier_id": b.ID(),
			"timeout":     pendingSendsWaitTimeout,
			"queue_depth": len(b.NotificationC()),
		}).Warn("진행 중인 Send 대기 중단: 대기 제한 시간 초과")
	}

	for {
		select {
		case req := <-b.NotificationC():
			if drainCtx.Err() != nil {
				applog.WithComponentAndFields(component, applog.Fields{
					"notifier_id":         b.ID(),
					"timeout":             drainTimeout,
					"remaining_in_buffer": len(b.NotificationC()) + 1,
				}).Warn("잔여 알림 폐기: 종료 대기 시간 초과")
				return
			}

			sendSafely(drainCtx, b, &Request{Ctx: drainCtx, Notification: req.Notification}, send)

		default:
			return
		}
	}
}
