package response

import "github.com/darkkaiser/linkcompra-server/internal/pkg/money"

// AlertResponse 구독 생성/갱신 결과
type AlertResponse struct {
	ID string `json:"id" example:"9b2f3c9e-4d0a-4f55-9a43-0d2d0f6f8a11"`
	// 마스킹된 수신 번호
	Phone       string       `json:"phone" example:"+55*******4321"`
	ProductID   string       `json:"product_id" example:"iphone-15-128gb"`
	TargetPrice money.Amount `json:"target_price" swaggertype:"string" example:"3999.90"`
}
