// Package notification 구독자(WhatsApp)와 운영자(Telegram)에게 알림을 발송하는 서비스입니다.
package notification

import (
	"context"
	"sync"

	"github.com/darkkaiser/linkcompra-server/internal/config"
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/internal/service/contract"
	"github.com/darkkaiser/linkcompra-server/internal/service/notification/notifier"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
)

const component = "notification.service"

type Service struct {
	appConfig *config.AppConfig

	notifierFactory NotifierFactory

	notifiers       map[contract.NotifierID]notifier.Notifier
	defaultNotifier notifier.Notifier

	// notifiersStopWG 모든 Notifier 워커의 종료를 기다립니다.
	notifiersStopWG sync.WaitGroup

	running   bool
	runningMu sync.RWMutex
}

var (
	_ contract.NotificationSender        = (*Service)(nil)
	_ contract.NotificationHealthChecker = (*Service)(nil)
)

func NewService(appConfig *config.AppConfig) *Service {
	return &Service{
		appConfig:       appConfig,
		notifierFactory: newDefaultNotifierFactory(),
	}
}

func (s *Service) SetNotifierFactory(factory NotifierFactory) {
	s.notifierFactory = factory
}

// Start Notifier들을 만들고 각 워커를 실행합니다.
//
// 실패하면 serviceStopWG.Done()을 직접 호출하고, 성공하면 종료 감시 고루틴이 호출합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("Notification 서비스 시작중...")

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(component).Warn("Notification 서비스가 이미 시작됨!!!")
		return nil
	}

	created, err := s.notifierFactory.CreateNotifiers(s.appConfig)
	if err != nil {
		defer serviceStopWG.Done()
		return newErrNotifierInitFailed(err)
	}

	notifiers := make(map[contract.NotifierID]notifier.Notifier, len(created))
	for _, n := range created {
		if _, exists := notifiers[n.ID()]; exists {
			closeAll(created)
			defer serviceStopWG.Done()
			return newErrDuplicateNotifierID(n.ID())
		}
		notifiers[n.ID()] = n
	}

	defaultNotifier, ok := notifiers[contract.NotifierID(s.appConfig.Notifiers.DefaultNotifierID)]
	if !ok {
		closeAll(created)
		defer serviceStopWG.Done()
		return newErrDefaultNotifierNotFound(s.appConfig.Notifiers.DefaultNotifierID)
	}

	for _, n := range created {
		s.notifiersStopWG.Add(1)
		go func(n notifier.Notifier) {
			defer s.notifiersStopWG.Done()
			n.Run(serviceStopCtx)
		}(n)

		applog.WithComponentAndFields(component, applog.Fields{
			"notifier_id": n.ID(),
		}).Debug("Notifier가 Notification 서비스에 등록됨")
	}

	s.notifiers = notifiers
	s.defaultNotifier = defaultNotifier
	s.running = true

	go s.waitForShutdown(serviceStopCtx, serviceStopWG)

	applog.WithComponent(component).Info("Notification 서비스 시작됨")

	return nil
}

func closeAll(notifiers []notifier.Notifier) {
	for _, n := range notifiers {
		n.Close()
	}
}

func (s *Service) waitForShutdown(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	<-serviceStopCtx.Done()

	applog.WithComponent(component).Info("Notification 서비스 중지중...")

	// 워커가 남은 큐를 비우는 동안에도 새 요청은 막는다.
	s.runningMu.Lock()
	s.running = false
	notifiers := s.notifiers
	s.runningMu.Unlock()

	for _, n := range notifiers {
		n.Close()
	}
	s.notifiersStopWG.Wait()

	s.runningMu.Lock()
	s.notifiers = nil
	s.defaultNotifier = nil
	s.runningMu.Unlock()

	applog.WithComponent(component).Info("Notification 서비스 중지됨")
}

// Notify NotifierID가 비어 있으면 기본 Notifier로 보냅니다.
// nil 반환은 큐 등록 성공을 뜻하며 실제 전달 여부와는 무관합니다.
func (s *Service) Notify(ctx context.Context, n contract.Notification) error {
	s.runningMu.RLock()
	defer s.runningMu.RUnlock()

	if !s.running {
		return ErrServiceNotRunning
	}

	target := s.defaultNotifier
	if n.NotifierID != "" {
		found, ok := s.notifiers[n.NotifierID]
		if !ok {
			return apperrors.Wrapf(ErrNotifierNotFound, apperrors.NotFound, "Notifier ID: %s", n.NotifierID)
		}
		target = found
	}

	if err := target.Send(ctx, n); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"notifier_id": target.ID(),
			"title":       n.Title,
			"error":       err,
		}).Warn("알림 발송 요청 실패")
		return err
	}

	return nil
}

// NotifyDefault 운영자 채널(기본 Notifier)로 메시지를 보냅니다.
func (s *Service) NotifyDefault(message string) error {
	return s.Notify(context.Background(), contract.Notification{Message: message})
}

// NotifyDefaultWithError 운영자 채널로 오류 표시가 붙은 메시지를 보냅니다.
func (s *Service) NotifyDefaultWithError(message string) error {
	return s.Notify(context.Background(), contract.Notification{Message: message, ErrorOccurred: true})
}

// Health 서비스가 실행 중이고 기본 Notifier 워커가 살아 있는지 확인합니다.
func (s *Service) Health() error {
	s.runningMu.RLock()
	defer s.runningMu.RUnlock()

	if !s.running {
		return ErrServiceNotRunning
	}

	select {
	case <-s.defaultNotifier.Done():
		return ErrNotifierUnavailable
	default:
		return nil
	}
}
