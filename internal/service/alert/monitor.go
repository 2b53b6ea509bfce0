// Package alert 구독자의 목표가와 현재 최저가를 비교하여 WhatsApp 가격 알림을 보냅니다.
package alert

import (
	"context"
	"sync"
	"time"

	"github.com/darkkaiser/linkcompra-server/internal/config"
	"github.com/darkkaiser/linkcompra-server/internal/domain/catalog"
	"github.com/darkkaiser/linkcompra-server/internal/domain/lead"
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/internal/pkg/phone"
	"github.com/darkkaiser/linkcompra-server/internal/service/contract"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
)

const component = "alert.monitor"

// Result 한 번의 점검 결과입니다.
type Result struct {
	LeadsChecked int `json:"leads_checked"`
	Notified     int `json:"notified"`
	Skipped      int `json:"skipped"`
	Errors       int `json:"errors"`
}

type Monitor struct {
	products contract.ProductRepository
	leads    contract.LeadRepository
	sender   contract.NotificationSender

	notifierID  contract.NotifierID
	cooldown    time.Duration
	siteBaseURL string

	now func() time.Time

	// runMu 같은 프로세스 안에서만 겹치는 실행을 막는다. 다른 프로세스(CLI)와의 겹침은 막지 못한다.
	runMu sync.Mutex
}

func NewMonitor(cfg config.AlertConfig, products contract.ProductRepository, leads contract.LeadRepository, sender contract.NotificationSender) *Monitor {
	cooldown := cfg.Cooldown
	if cooldown <= 0 {
		cooldown = lead.DefaultCooldown
	}

	return &Monitor{
		products: products,
		leads:    leads,
		sender:   sender,

		notifierID:  contract.NotifierID(cfg.NotifierID),
		cooldown:    cooldown,
		siteBaseURL: cfg.SiteBaseURL,

		now: time.Now,
	}
}

// CheckPrices 활성 구독 전체를 한 번 점검합니다.
//
// 구독 하나의 실패는 집계만 하고 계속 진행합니다. 에러는 구독 목록 조회 실패 또는 중복 실행일 때만 반환합니다.
func (m *Monitor) CheckPrices(ctx context.Context) (Result, error) {
	if !m.runMu.TryLock() {
		return Result{}, ErrAlreadyRunning
	}
	defer m.runMu.Unlock()

	var result Result

	leads, err := m.leads.FindActive(ctx)
	if err != nil {
		return result, newErrLoadLeadsFailed(err)
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"leads": len(leads),
	}).Info("가격 알림 점검 시작")

	// 실행 동안만 유효한 상품 캐시. 조회 실패도 기록해 같은 상품을 반복 조회하지 않는다.
	type cached struct {
		product *catalog.ComparisonProduct
		err     error
	}
	productCache := make(map[string]cached)

	for _, l := range leads {
		if err := ctx.Err(); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"checked": result.LeadsChecked,
			}).Warn("가격 알림 점검 중단: 컨텍스트 취소")
			break
		}

		result.LeadsChecked++

		c, ok := productCache[l.ProductID]
		if !ok {
			p, err := m.products.FindByID(ctx, l.ProductID)
			c = cached{product: p, err: err}
			productCache[l.ProductID] = c
		}
		if c.err != nil {
			result.Errors++
			applog.WithComponentAndFields(component, applog.Fields{
				"lead_id":    l.ID,
				"product_id": l.ProductID,
				"error":      c.err,
			}).Warn("구독 상품 조회 실패 (건너뜀)")
			continue
		}

		notified, err := m.checkLead(ctx, l, c.product)
		switch {
		case err != nil:
			result.Errors++
		case notified:
			result.Notified++
		default:
			result.Skipped++
		}
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"leads_checked": result.LeadsChecked,
		"notified":      result.Notified,
		"skipped":       result.Skipped,
		"errors":        result.Errors,
	}).Info("가격 알림 점검 완료")

	return result, nil
}

// checkLead 조건을 만족하면 알림을 요청하고, 요청이 수락된 경우에만 알림 이력을 저장합니다.
func (m *Monitor) checkLead(ctx context.Context, l *lead.Lead, p *catalog.ComparisonProduct) (bool, error) {
	best, ok := p.MinPrice()
	if !ok {
		return false, nil
	}

	now := m.now()
	if !l.ShouldNotify(best.Price, now, m.cooldown) {
		return false, nil
	}

	fields := applog.Fields{
		"lead_id":    l.ID,
		"product_id": p.ID,
		"phone":      phone.Mask(l.Phone),
		"price":      best.Price.String(),
		"target":     l.TargetPrice.String(),
		"store":      best.Store,
	}

	err := m.sender.Notify(ctx, contract.Notification{
		NotifierID: m.notifierID,
		Recipient:  l.Phone,
		Title:      messageTitle,
		Message:    renderMessage(m.siteBaseURL, p, best, l),
	})
	if err != nil {
		fields["error"] = err
		applog.WithComponentAndFields(component, fields).Warn("가격 알림 발송 요청 실패 (다음 점검에서 재시도)")
		return false, err
	}

	l.MarkNotified(best.Price, now)
	if l.ProductName == "" {
		l.ProductName = p.Name
	}
	if err := m.leads.Save(ctx, l); err != nil {
		fields["error"] = err
		applog.WithComponentAndFields(component, fields).Error("알림 이력 저장 실패: 다음 점검에서 중복 발송될 수 있습니다")
		return false, apperrors.Wrap(err, apperrors.System, "알림 이력 저장 실패")
	}

	applog.WithComponentAndFields(component, fields).Info("가격 알림 발송 요청 완료")
	return true, nil
}
