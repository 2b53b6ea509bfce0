// Package telegram 운영자 채팅방으로 운영 알림(작업 실패, 서버 상태)을 보내는 Notifier입니다.
package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"github.com/darkkaiser/linkcompra-server/internal/config"
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/internal/service/contract"
	"github.com/darkkaiser/linkcompra-server/internal/service/notification/notifier"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
	"github.com/darkkaiser/linkcompra-server/pkg/strutil"
)

const component = "notification.notifier.telegram"

const (
	bufferSize     = 100
	enqueueTimeout = 5 * time.Second

	maxAttempts = 3
)

// botClient 텔레그램 봇 API 중 전송에 필요한 부분만 추상화합니다.
type botClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type telegramNotifier struct {
	*notifier.Base

	chatID int64
	client botClient

	retryDelay  time.Duration
	rateLimiter *rate.Limiter

	drainTimeout time.Duration
}

var _ notifier.Notifier = (*telegramNotifier)(nil)

// New 봇 토큰으로 텔레그램 API에 접속하여 Notifier를 생성합니다.
func New(cfg config.TelegramConfig) (notifier.Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.Unavailable, "텔레그램 봇 API 연결 실패 (token: %s)", strutil.MaskSensitiveData(cfg.BotToken))
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"notifier_id":  cfg.ID,
		"bot_username": bot.Self.UserName,
	}).Debug("텔레그램 봇 인증 완료")

	return newNotifier(contract.NotifierID(cfg.ID), cfg.ChatID, bot, time.Second), nil
}

func newNotifier(id contract.NotifierID, chatID int64, client botClient, retryDelay time.Duration) *telegramNotifier {
	return &telegramNotifier{
		Base: notifier.NewBase(id, bufferSize, enqueueTimeout),

		chatID: chatID,
		client: client,

		retryDelay: retryDelay,

		// 같은 채팅방으로는 초당 1건을 넘기지 않는다.
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 1),

		drainTimeout: notifier.DefaultDrainTimeout,
	}
}

func (n *telegramNotifier) Run(ctx context.Context) {
	applog.WithComponentAndFields(component, applog.Fields{
		"notifier_id": n.ID(),
		"chat_id":     n.chatID,
	}).Info("텔레그램 Notifier 시작")

	notifier.RunSendLoop(ctx, n.Base, n.drainTimeout, func(ctx context.Context, req *notifier.Request) {
		n.sendNotification(ctx, &req.Notification)
	})

	applog.WithComponentAndFields(component, applog.Fields{
		"notifier_id": n.ID(),
	}).Info("텔레그램 Notifier 종료")
}

func (n *telegramNotifier) sendNotification(ctx context.Context, notification *contract.Notification) {
	for _, chunk := range splitMessage(buildMessage(notification), messageMaxLength) {
		if err := n.sendChunk(ctx, chunk); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"notifier_id": n.ID(),
				"chat_id":     n.chatID,
				"title":       notification.Title,
				"error":       err,
			}).Error("텔레그램 메시지 전송 실패 (남은 분할 메시지 전송 중단)")
			return
		}
	}
}

// sendChunk 실패 시 retryDelay 간격으로 최대 maxAttempts번 시도합니다.
func (n *telegramNotifier) sendChunk(ctx context.Context, text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := n.rateLimiter.Wait(ctx); err != nil {
			return apperrors.Wrap(err, apperrors.Unavailable, "텔레그램 전송 속도 제한 대기 중 취소되었습니다")
		}

		_, err := n.client.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return apperrors.Wrap(ctx.Err(), apperrors.Unavailable, "텔레그램 재전송 대기 중 취소되었습니다")
		case <-time.After(n.retryDelay):
		}
	}

	return apperrors.Wrapf(lastErr, apperrors.Unavailable, "텔레그램 메시지 전송 %d회 실패", maxAttempts)
}
