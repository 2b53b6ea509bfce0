package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/darkkaiser/linkcompra-server/internal/service/api/v1/model/request"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/v1/model/response"
	"github.com/darkkaiser/linkcompra-server/internal/service/offers"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
)

// SearchOffersHandler godoc
// @Summary 오퍼 검색
// @Description Amazon, Shopee, Lomadee, Mercado Livre 제휴 API를 동시에 조회하여 가격 오름차순으로 반환합니다.
// @Description 일부 제공자가 실패해도 나머지 결과를 반환하며, 실패 사유는 provider_errors에 담깁니다.
// @Description 같은 검색어는 일정 시간 동안 캐시된 결과를 반환합니다.
// @Tags Offers
// @Produce json
// @Param q query string true "검색어" example(air fryer)
// @Success 200 {object} response.OffersResponse "검색 결과"
// @Failure 400 {object} response.ErrorResponse "검색어 누락"
// @Failure 503 {object} response.ErrorResponse "모든 제공자 호출 실패"
// @Router /api/v1/offers [get]
func (h *Handler) SearchOffersHandler(c echo.Context) error {
	req := new(request.OffersRequest)
	if err := c.Bind(req); err != nil {
		return NewErrInvalidBody()
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	result, err := h.offers.Search(c.Request().Context(), req.Query)
	if err != nil {
		return translateError(err)
	}

	if len(result.ProviderErrors) > 0 {
		h.log(c).WithFields(applog.Fields{
			"query":           result.Query,
			"provider_errors": result.ProviderErrors,
		}).Warn("일부 오퍼 제공자 호출 실패")
	}

	return c.JSON(http.StatusOK, newOffersResponse(result))
}

func newOffersResponse(r offers.Result) response.OffersResponse {
	items := make([]response.OfferItem, 0, len(r.Offers))
	for _, o := range r.Offers {
		items = append(items, response.OfferItem{
			Provider:     o.Provider,
			Title:        o.Title,
			Price:        o.Price,
			URL:          o.URL,
			ImageURL:     o.ImageURL,
			Store:        o.Store,
			FreeShipping: o.FreeShipping,
		})
	}

	return response.OffersResponse{
		Query:          r.Query,
		Total:          len(items),
		Offers:         items,
		Cached:         r.Cached,
		ProviderErrors: r.ProviderErrors,
		FetchedAt:      r.FetchedAt,
	}
}
