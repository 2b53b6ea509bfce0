// Package lead 가격 알림 구독자(Lead) 도메인 모델을 정의합니다.
package lead

import (
	"time"

	"github.com/darkkaiser/linkcompra-server/internal/pkg/money"
)

// DefaultCooldown 같은 구독자에게 알림을 다시 보내기까지의 최소 간격입니다.
const DefaultCooldown = 24 * time.Hour

// Lead 특정 상품이 목표가 아래로 떨어지면 WhatsApp 알림을 받는 구독입니다.
// (Phone, ProductID) 조합은 유일합니다.
type Lead struct {
	ID                string        `json:"id" bson:"_id"`
	Phone             string        `json:"phone" bson:"phone"`
	PasswordHash      string        `json:"-" bson:"password_hash"`
	ProductID         string        `json:"product_id" bson:"product_id"`
	ProductName       string        `json:"product_name,omitempty" bson:"product_name,omitempty"`
	TargetPrice       money.Amount  `json:"target_price" bson:"target_price"`
	Active            bool          `json:"active" bson:"active"`
	LastNotifiedAt    *time.Time    `json:"last_notified_at,omitempty" bson:"last_notified_at,omitempty"`
	LastNotifiedPrice *money.Amount `json:"last_notified_price,omitempty" bson:"last_notified_price,omitempty"`
	NotifyCount       int           `json:"notify_count" bson:"notify_count"`
	CreatedAt         time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at" bson:"updated_at"`
}

// ShouldNotify 활성 상태이고, 현재가가 0보다 크며 목표가보다 엄격히 낮고,
// 마지막 알림 이후 cooldown 이상 지났을 때만 true입니다.
func (l *Lead) ShouldNotify(current money.Amount, now time.Time, cooldown time.Duration) bool {
	if !l.Active || !current.IsPositive() || !current.LessThan(l.TargetPrice) {
		return false
	}
	if l.LastNotifiedAt == nil {
		return true
	}
	return now.Sub(*l.LastNotifiedAt) >= cooldown
}

func (l *Lead) MarkNotified(price money.Amount, now time.Time) {
	at := now
	p := price
	l.LastNotifiedAt = &at
	l.LastNotifiedPrice = &p
	l.NotifyCount++
	l.UpdatedAt = now
}
