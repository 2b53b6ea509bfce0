// Package subscription 가격 알림 구독(Lead)의 등록과 해지를 담당합니다.
package subscription

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/darkkaiser/linkcompra-server/internal/config"
	"github.com/darkkaiser/linkcompra-server/internal/domain/catalog"
	"github.com/darkkaiser/linkcompra-server/internal/domain/lead"
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/internal/pkg/mark"
	"github.com/darkkaiser/linkcompra-server/internal/pkg/money"
	"github.com/darkkaiser/linkcompra-server/internal/pkg/phone"
	"github.com/darkkaiser/linkcompra-server/internal/service/contract"
	"github.com/darkkaiser/linkcompra-server/pkg/concurrency"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
)

const component = "subscription.service"

const (
	minPasswordBytes = 4

	// maxPasswordBytes bcrypt가 처리하는 최대 길이입니다.
	maxPasswordBytes = 72
)

type SubscribeRequest struct {
	Phone       string
	Password    string
	ProductID   string
	TargetPrice money.Amount
}

type UnsubscribeRequest struct {
	Phone     string
	Password  string
	ProductID string
}

type Service struct {
	products contract.ProductRepository
	leads    contract.LeadRepository
	sender   contract.NotificationSender

	notifierID  contract.NotifierID
	siteBaseURL string

	// locks (전화번호, 상품) 단위로 조회-저장 구간을 직렬화한다.
	locks *concurrency.KeyedMutex[string]

	bcryptCost int
	now        func() time.Time
}

func NewService(cfg config.AlertConfig, products contract.ProductRepository, leads contract.LeadRepository, sender contract.NotificationSender) *Service {
	return &Service{
		products: products,
		leads:    leads,
		sender:   sender,

		notifierID:  contract.NotifierID(cfg.NotifierID),
		siteBaseURL: cfg.SiteBaseURL,

		locks: concurrency.NewKeyedMutex[string](),

		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

func lockKey(phone, productID string) string {
	return phone + "|" + productID
}

// Subscribe 구독을 생성하거나, 같은 번호와 상품의 기존 구독이 있으면 비밀번호 확인 후 목표가를 갱신하고 다시 활성화합니다.
func (s *Service) Subscribe(ctx context.Context, req SubscribeRequest) (*lead.Lead, error) {
	e164, err := phone.NormalizeBR(req.Phone)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}
	if !req.TargetPrice.IsPositive() {
		return nil, ErrInvalidTargetPrice
	}
	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		return nil, ErrProductIDRequired
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if apperrors.Is(err, apperrors.NotFound) {
			return nil, apperrors.Wrapf(ErrProductNotFound, apperrors.NotFound, "상품 ID: %s", productID)
		}
		return nil, apperrors.Wrap(err, apperrors.System, "상품 조회 실패")
	}

	key := lockKey(e164, productID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	now := s.now()

	l, err := s.leads.FindByPhoneAndProduct(ctx, e164, productID)
	switch {
	case err == nil:
		if !checkPassword(l.PasswordHash, req.Password) {
			return nil, ErrInvalidCredentials
		}
		l.TargetPrice = req.TargetPrice
		l.ProductName = product.Name
		l.Active = true
		l.UpdatedAt = now

	case apperrors.Is(err, apperrors.NotFound):
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.Internal, "비밀번호 해시 생성 실패")
		}
		l = &lead.Lead{
			ID:           uuid.NewString(),
			Phone:        e164,
			PasswordHash: string(hash),
			ProductID:    productID,
			ProductName:  product.Name,
			TargetPrice:  req.TargetPrice,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

	default:
		return nil, apperrors.Wrap(err, apperrors.System, "구독 조회 실패")
	}

	if err := s.leads.Save(ctx, l); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "구독 저장 실패")
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"lead_id":      l.ID,
		"product_id":   productID,
		"phone":        phone.Mask(e164),
		"target_price": l.TargetPrice.String(),
	}).Info("가격 알림 구독 저장 완료")

	s.sendConfirmation(ctx, l, product)

	return l, nil
}

// sendConfirmation 확인 메시지 발송 실패는 구독 결과에 영향을 주지 않습니다.
func (s *Service) sendConfirmation(ctx context.Context, l *lead.Lead, p *catalog.ComparisonProduct) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s Alerta de preço ativado!\n\n", mark.Info)
	fmt.Fprintf(&sb, "Vamos avisar você quando *%s* ficar abaixo de %s.\n", p.Name, l.TargetPrice.FormatBRL())
	if best, ok := p.MinPrice(); ok {
		fmt.Fprintf(&sb, "Menor preço agora: %s na %s\n", best.Price.FormatBRL(), best.Store.DisplayName())
	}
	if s.siteBaseURL != "" {
		fmt.Fprintf(&sb, "\n%s %s/produto/%s", mark.Link, strings.TrimRight(s.siteBaseURL, "/"), p.PathSegment())
	}

	err := s.sender.Notify(ctx, contract.Notification{
		NotifierID: s.notifierID,
		Recipient:  l.Phone,
		Title:      "LinkCompra",
		Message:    sb.String(),
	})
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"lead_id": l.ID,
			"phone":   phone.Mask(l.Phone),
			"error":   err,
		}).Warn("구독 확인 메시지 발송 요청 실패")
	}
}

// Unsubscribe 비밀번호가 맞으면 구독을 삭제합니다.
func (s *Service) Unsubscribe(ctx context.Context, req UnsubscribeRequest) error {
	e164, err := phone.NormalizeBR(req.Phone)
	if err != nil {
		return err
	}
	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		return ErrProductIDRequired
	}

	key := lockKey(e164, productID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	l, err := s.leads.FindByPhoneAndProduct(ctx, e164, productID)
	if err != nil {
		if apperrors.Is(err, apperrors.NotFound) {
			return ErrInvalidCredentials
		}
		return apperrors.Wrap(err, apperrors.System, "구독 조회 실패")
	}

	if !checkPassword(l.PasswordHash, req.Password) {
		return ErrInvalidCredentials
	}

	if err := s.leads.Delete(ctx, l.ID); err != nil {
		return apperrors.Wrap(err, apperrors.System, "구독 삭제 실패")
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"lead_id":    l.ID,
		"product_id": productID,
		"phone":      phone.Mask(e164),
	}).Info("가격 알림 구독 해지 완료")

	return nil
}

func validatePassword(password string) error {
	if n := len(password); n < minPasswordBytes || n > maxPasswordBytes {
		return ErrInvalidPassword
	}
	return nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
