package request

// OffersRequest 오퍼 검색 요청
type OffersRequest struct {
	// 검색어
	Query string `query:"q" validate:"required,max=120" label:"busca" example:"air fryer"`
}
