// Package whatsapp WhatsApp Cloud API로 구독자에게 가격 알림을 보내는 Notifier입니다.
package whatsapp

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/darkkaiser/linkcompra-server/internal/config"
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/internal/pkg/mark"
	"github.com/darkkaiser/linkcompra-server/internal/pkg/phone"
	"github.com/darkkaiser/linkcompra-server/internal/service/contract"
	"github.com/darkkaiser/linkcompra-server/internal/service/notification/notifier"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
	"github.com/darkkaiser/linkcompra-server/pkg/strutil"
)

const component = "notification.notifier.whatsapp"

const (
	bufferSize     = 500
	enqueueTimeout = 5 * time.Second

	requestTimeout = 15 * time.Second
	retryCount     = 2

	// messageMaxLength Cloud API 텍스트 메시지 본문 한도(4096자)입니다.
	messageMaxLength = 4096

	messagesPath = "/{version}/{phone_number_id}/messages"
)

type textBody struct {
	PreviewURL bool   `json:"preview_url"`
	Body       string `json:"body"`
}

type messageRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	RecipientType    string   `json:"recipient_type"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type whatsappNotifier struct {
	*notifier.Base

	phoneNumberID string
	apiVersion    string

	client      *resty.Client
	rateLimiter *rate.Limiter

	drainTimeout time.Duration
}

var _ notifier.Notifier = (*whatsappNotifier)(nil)

// New 설정으로 WhatsApp Notifier를 생성합니다. 워커는 Run을 호출해야 시작됩니다.
func New(cfg config.WhatsAppConfig) (notifier.Notifier, error) {
	return newNotifier(cfg, 500*time.Millisecond)
}

func newNotifier(cfg config.WhatsAppConfig, retryWait time.Duration) (*whatsappNotifier, error) {
	if cfg.ID == "" {
		return nil, apperrors.New(apperrors.InvalidInput, "WhatsApp Notifier ID가 비어 있습니다")
	}
	if cfg.PhoneNumberID == "" || cfg.AccessToken == "" {
		return nil, apperrors.Newf(apperrors.InvalidInput, "WhatsApp Notifier(%s)의 phone_number_id 또는 access_token이 비어 있습니다", cfg.ID)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultWhatsAppBaseURL
	}
	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = config.DefaultWhatsAppAPIVersion
	}
	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Limit(config.DefaultWhatsAppRateLimit)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = config.DefaultWhatsAppBurst
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(cfg.AccessToken).
		SetHeader("Content-Type", "application/json").
		SetTimeout(requestTimeout).
		SetRetryCount(retryCount).
		SetRetryWaitTime(retryWait).
		SetRetryMaxWaitTime(4*retryWait).
		SetLogger(applog.WithComponent(component)).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})

	return &whatsappNotifier{
		Base:          notifier.NewBase(contract.NotifierID(cfg.ID), bufferSize, enqueueTimeout),
		phoneNumberID: cfg.PhoneNumberID,
		apiVersion:    apiVersion,
		client:        client,
		rateLimiter:   rate.NewLimiter(limit, burst),
		drainTimeout:  notifier.DefaultDrainTimeout,
	}, nil
}

// Send 수신자 번호를 먼저 검증한 뒤 큐에 넣습니다. 잘못된 번호는 큐에 들어가지 않습니다.
func (n *whatsappNotifier) Send(ctx context.Context, notification contract.Notification) error {
	recipient, err := normalizeRecipient(notification.Recipient)
	if err != nil {
		return err
	}
	notification.Recipient = recipient

	return n.Base.Send(ctx, notification)
}

func normalizeRecipient(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", contract.ErrRecipientRequired
	}

	e164, err := phone.NormalizeBR(raw)
	if err != nil {
		return "", apperrors.Wrap(contract.ErrRecipientRequired, apperrors.InvalidInput, "WhatsApp 수신자 번호 형식이 올바르지 않습니다")
	}
	return e164, nil
}

func (n *whatsappNotifier) Run(ctx context.Context) {
	applog.WithComponentAndFields(component, applog.Fields{
		"notifier_id":     n.ID(),
		"phone_number_id": strutil.MaskSensitiveData(n.phoneNumberID),
	}).Info("WhatsApp Notifier 시작")

	notifier.RunSendLoop(ctx, n.Base, n.drainTimeout, func(ctx context.Context, req *notifier.Request) {
		n.sendNotification(ctx, &req.Notification)
	})

	applog.WithComponentAndFields(component, applog.Fields{
		"notifier_id": n.ID(),
	}).Info("WhatsApp Notifier 종료")
}

func (n *whatsappNotifier) sendNotification(ctx context.Context, notification *contract.Notification) {
	messageID, err := n.deliver(ctx, notification)

	fields := applog.Fields{
		"notifier_id": n.ID(),
		"recipient":   phone.Mask(notification.Recipient),
		"title":       notification.Title,
	}
	if err != nil {
		fields["error"] = err
		applog.WithComponentAndFields(component, fields).Error("WhatsApp 메시지 전송 실패")
		return
	}

	fields["message_id"] = messageID
	applog.WithComponentAndFields(component, fields).Info("WhatsApp 메시지 전송 완료")
}

// deliver Cloud API를 한 번 호출하고(resty 재시도 포함) 발급된 메시지 ID를 반환합니다.
func (n *whatsappNotifier) deliver(ctx context.Context, notification *contract.Notification) (string, error) {
	if err := n.rateLimiter.Wait(ctx); err != nil {
		return "", apperrors.Wrap(err, apperrors.Unavailable, "WhatsApp 전송 속도 제한 대기 중 취소되었습니다")
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"version":         n.apiVersion,
			"phone_number_id": n.phoneNumberID,
		}).
		SetBody(messageRequest{
			MessagingProduct: "whatsapp",
			RecipientType:    "individual",
			To:               phone.Digits(notification.Recipient),
			Type:             "text",
			Text: textBody{
				PreviewURL: true,
				Body:       buildMessage(notification),
			},
		}).
		Post(messagesPath)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.Unavailable, "WhatsApp Cloud API 호출 실패")
	}

	if resp.IsError() {
		reason := gjson.GetBytes(resp.Body(), "error.message").String()
		if reason == "" {
			reason = resp.Status()
		}

		errType := apperrors.ExecutionFailed
		if resp.StatusCode() == http.StatusTooManyRequests || resp.StatusCode() >= http.StatusInternalServerError {
			errType = apperrors.Unavailable
		}
		return "", apperrors.Newf(errType, "WhatsApp Cloud API 오류 응답 (status: %d): %s", resp.StatusCode(), reason)
	}

	messageID := gjson.GetBytes(resp.Body(), "messages.0.id")
	if !messageID.Exists() {
		return "", apperrors.New(apperrors.ParsingFailed, "WhatsApp Cloud API 응답에 메시지 ID가 없습니다")
	}
	return messageID.String(), nil
}

// buildMessage 제목은 WhatsApp 굵게 서식(*...*)으로 본문 위에 붙입니다.
func buildMessage(notification *contract.Notification) string {
	var sb strings.Builder

	if notification.ErrorOccurred {
		sb.WriteString(mark.Alert.String())
		sb.WriteString(" ")
	}
	if title := strings.TrimSpace(notification.Title); title != "" {
		sb.WriteString("*")
		sb.WriteString(title)
		sb.WriteString("*\n\n")
	}
	sb.WriteString(notification.Message)

	return strutil.Truncate(sb.String(), messageMaxLength-1)
}
