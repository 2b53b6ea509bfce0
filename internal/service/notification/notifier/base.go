package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/darkkaiser/linkcompra-server/internal/service/contract"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
)

// Request 큐를 통해 워커로 전달되는 발송 요청입니다.
//
// 워커에게 호출자의 Context(값, 데드라인)를 넘기기 위해 구조체에 Context를 담습니다.
type Request struct {
	Ctx          context.Context
	Notification contract.Notification
}

// Base 모든 Notifier 구현체가 임베딩하는 발송 큐입니다.
//
// 구현체는 "큐에 넣고 관리하는 책임"을 Base에 맡기고 실제 외부 API 호출에만 집중합니다.
type Base struct {
	id contract.NotifierID

	// enqueueTimeout 큐가 가득 찼을 때 빈 자리가 생기기를 기다리는 최대 시간입니다.
	enqueueTimeout time.Duration

	notificationC chan *Request

	mu     sync.RWMutex
	closed bool
	done   chan struct{}

	// pendingSendsWG Send/TrySend 안에서 채널 전송을 시도 중인 고루틴 수입니다.
	// 워커는 종료 전에 이 카운터가 0이 되기를 기다려 Close 직전에 들어온 요청의 유실을 막습니다.
	pendingSendsWG sync.WaitGroup
}

func NewBase(id contract.NotifierID, bufferSize int, enqueueTimeout time.Duration) *Base {
	return &Base{
		id:             id,
		enqueueTimeout: enqueueTimeout,
		notificationC:  make(chan *Request, bufferSize),
		done:           make(chan struct{}),
	}
}

func (b *Base) ID() contract.NotifierID { return b.id }

// Send 요청을 큐에 등록합니다. 큐가 가득 차면 enqueueTimeout만큼 기다린 뒤 ErrQueueFull을 반환합니다.
func (b *Base) Send(ctx context.Context, n contract.Notification) (err error) {
	req, notificationC, done, cleanup, prepareErr := b.prepareSend(ctx, n)
	if prepareErr != nil {
		return prepareErr
	}
	defer cleanup(&err)

	timer := time.NewTimer(b.enqueueTimeout)
	defer timer.Stop()

	select {
	case notificationC <- req:
		return nil
	case <-done:
		return ErrClosed
	case <-req.Ctx.Done():
		return req.Ctx.Err()
	case <-timer.C:
		b.logQueueFull(n)
		return ErrQueueFull
	}
}

// TrySend Send와 같지만 큐가 가득 차 있으면 기다리지 않고 즉시 ErrQueueFull을 반환합니다.
func (b *Base) TrySend(ctx context.Context, n contract.Notification) (err error) {
	req, notificationC, done, cleanup, prepareErr := b.prepareSend(ctx, n)
	if prepareErr != nil {
		return prepareErr
	}
	defer cleanup(&err)

	select {
	case notificationC <- req:
		return nil
	case <-done:
		return ErrClosed
	case <-req.Ctx.Done():
		return req.Ctx.Err()
	default:
		b.logQueueFull(n)
		return ErrQueueFull
	}
}

func (b *Base) prepareSend(ctx context.Context, n contract.Notification) (
	req *Request,
	notificationC chan *Request,
	done chan struct{},
	cleanup func(*error),
	err error,
) {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := n.Validate(); err != nil {
		return nil, nil, nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, nil, nil, err
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return nil, nil, nil, nil, ErrClosed
	}
	b.pendingSendsWG.Add(1)
	notificationC, done = b.notificationC, b.done
	b.mu.RUnlock()

	cleanup = func(errPtr *error) {
		b.pendingSendsWG.Done()

		if r := recover(); r != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"notifier_id": b.id,
				"title":       n.Title,
				"panic":       r,
			}).Error("Notifier 패닉 복구: 알림 요청 등록 중 예기치 않은 오류가 발생했습니다")

			if errPtr != nil {
				*errPtr = ErrPanicRecovered
			}
		}
	}

	return &Request{Ctx: ctx, Notification: n}, notificationC, done, cleanup, nil
}

func (b *Base) logQueueFull(n contract.Notification) {
	applog.WithComponentAndFields(component, applog.Fields{
		"notifier_id": b.id,
		"title":       n.Title,
	}).Warn("알림 요청 거부: 발송 대기열 용량 초과")
}

// Close 새 요청을 거부하고 Done 채널을 닫습니다.
//
// 여러 생산자가 동시에 보낼 수 있으므로 notificationC는 닫지 않습니다.
// 워커는 Done이나 Context로 종료를 감지해야 합니다.
func (b *Base) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.closed {
		b.closed = true
		close(b.done)
	}
}

func (b *Base) Done() <-chan struct{} { return b.done }

func (b *Base) IsClosed() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

// WaitForPendingSends 진행 중인 Send/TrySend가 모두 끝날 때까지 기다립니다.
func (b *Base) WaitForPendingSends() { b.pendingSendsWG.Wait() }

// NotificationC 워커가 요청을 꺼내는 읽기 전용 채널입니다.
func (b *Base) NotificationC() <-chan *Request { return b.notificationC }
