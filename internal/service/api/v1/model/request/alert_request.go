package request

import "github.com/darkkaiser/linkcompra-server/internal/pkg/money"

// SubscribeRequest 가격 알림 구독 요청
type SubscribeRequest struct {
	// WhatsApp 수신 번호 (DDD 포함, +55 생략 가능)
	Phone string `json:"phone" validate:"required,br_phone" label:"telefone" example:"(11) 98765-4321"`
	// 구독 해지와 목표가 변경에 사용하는 비밀번호
	Password string `json:"password" validate:"required,min=4,max=72" label:"senha" example:"1234"`
	// 비교 상품 ID
	ProductID string `json:"product_id" validate:"required,max=128" label:"produto" example:"iphone-15-128gb"`
	// 목표가 (이 가격 미만이 되면 알림)
	TargetPrice money.Amount `json:"target_price" validate:"gt=0" label:"preço desejado" swaggertype:"string" example:"3999.90"`
}

// UnsubscribeRequest 가격 알림 해지 요청
type UnsubscribeRequest struct {
	Phone     string `json:"phone" validate:"required,br_phone" label:"telefone" example:"(11) 98765-4321"`
	Password  string `json:"password" validate:"required,max=72" label:"senha" example:"1234"`
	ProductID string `json:"product_id" validate:"required,max=128" label:"produto" example:"iphone-15-128gb"`
}
