package notification

import (
	"github.com/darkkaiser/linkcompra-server/internal/config"
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/internal/service/notification/notifier"
	"github.com/darkkaiser/linkcompra-server/internal/service/notification/notifier/telegram"
	"github.com/darkkaiser/linkcompra-server/internal/service/notification/notifier/whatsapp"
)

// NotifierFactory 설정으로부터 Notifier 목록을 만듭니다.
type NotifierFactory interface {
	CreateNotifiers(cfg *config.AppConfig) ([]notifier.Notifier, error)
	RegisterProcessor(processor NotifierConfigProcessor)
}

// NotifierConfigProcessor 설정의 한 종류(WhatsApp, Telegram)를 Notifier로 변환합니다.
type NotifierConfigProcessor func(cfg *config.AppConfig) ([]notifier.Notifier, error)

type notifierFactory struct {
	processors []NotifierConfigProcessor
}

func NewNotifierFactory() NotifierFactory {
	return &notifierFactory{}
}

// newDefaultNotifierFactory 실제 WhatsApp, Telegram 생성자를 등록한 팩토리입니다.
func newDefaultNotifierFactory() NotifierFactory {
	f := NewNotifierFactory()
	f.RegisterProcessor(NewWhatsAppConfigProcessor(whatsapp.New))
	f.RegisterProcessor(NewTelegramConfigProcessor(telegram.New))
	return f
}

func (f *notifierFactory) RegisterProcessor(processor NotifierConfigProcessor) {
	f.processors = append(f.processors, processor)
}

// CreateNotifiers 하나라도 실패하면 이미 만든 Notifier를 닫고 에러를 반환합니다.
func (f *notifierFactory) CreateNotifiers(cfg *config.AppConfig) ([]notifier.Notifier, error) {
	if cfg == nil {
		return nil, apperrors.New(apperrors.InvalidInput, "설정 객체가 nil입니다")
	}

	var notifiers []notifier.Notifier
	for _, processor := range f.processors {
		created, err := processor(cfg)
		if err != nil {
			for _, n := range notifiers {
				n.Close()
			}
			return nil, err
		}
		notifiers = append(notifiers, created...)
	}

	return notifiers, nil
}

// NewWhatsAppConfigProcessor 생성자를 주입받아 테스트에서 외부 API 없이 교체할 수 있게 합니다.
func NewWhatsAppConfigProcessor(constructor func(config.WhatsAppConfig) (notifier.Notifier, error)) NotifierConfigProcessor {
	return func(cfg *config.AppConfig) ([]notifier.Notifier, error) {
		var notifiers []notifier.Notifier
		for _, c := range cfg.Notifiers.WhatsApps {
			n, err := constructor(c)
			if err != nil {
				return nil, apperrors.Wrapf(err, apperrors.Internal, "WhatsApp Notifier(%s) 생성 실패", c.ID)
			}
			notifiers = append(notifiers, n)
		}
		return notifiers, nil
	}
}

func NewTelegramConfigProcessor(constructor func(config.TelegramConfig) (notifier.Notifier, error)) NotifierConfigProcessor {
	return func(cfg *config.AppConfig) ([]notifier.Notifier, error) {
		var notifiers []notifier.Notifier
		for _, c := range cfg.Notifiers.Telegrams {
			n, err := constructor(c)
			if err != nil {
				return nil, apperrors.Wrapf(err, apperrors.Internal, "텔레그램 Notifier(%s) 생성 실패", c.ID)
			}
			notifiers = append(notifiers, n)
		}
		return notifiers, nil
	}
}
