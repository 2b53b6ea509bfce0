package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/darkkaiser/linkcompra-server/internal/domain/catalog"
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/constants"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/httputil"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/v1/model/response"
)

// ProductComparisonHandler godoc
// @Summary 상품 가격 비교
// @Description 비교 상품의 소매점별 현재가와 역대 최저가를 가격 오름차순으로 반환합니다.
// @Description 판매 불가이거나 가격이 없는 소매점은 목록 뒤쪽에 위치합니다.
// @Tags Product
// @Produce json
// @Param id path string true "비교 상품 ID" example(iphone-15-128gb)
// @Success 200 {object} response.ComparisonResponse "가격 비교 결과"
// @Failure 404 {object} response.ErrorResponse "존재하지 않는 상품"
// @Failure 500 {object} response.ErrorResponse "서버 내부 오류"
// @Router /api/v1/products/{id}/comparison [get]
func (h *Handler) ProductComparisonHandler(c echo.Context) error {
	id := strings.TrimSpace(c.Param(constants.PathParamProductID))
	if id == "" {
		return httputil.NewBadRequestError(constants.ErrMsgBadRequest)
	}

	p, err := h.products.FindByID(c.Request().Context(), id)
	if err != nil {
		if apperrors.Is(err, apperrors.NotFound) {
			return NewErrProductNotFound()
		}
		return apperrors.Wrapf(err, apperrors.System, "비교 상품 조회 실패 (id=%s)", id)
	}

	return c.JSON(http.StatusOK, newComparisonResponse(p))
}

func newComparisonResponse(p *catalog.ComparisonProduct) response.ComparisonResponse {
	sorted := p.SortedPrices()

	prices := make([]response.StorePriceItem, 0, len(sorted))
	for _, sp := range sorted {
		prices = append(prices, newStorePriceItem(sp))
	}

	resp := response.ComparisonResponse{
		ID:        p.ID,
		Name:      p.Name,
		Slug:      p.Slug,
		EAN:       p.EAN,
		Category:  p.Category,
		Images:    p.Images,
		Specs:     p.Specs,
		Prices:    prices,
		UpdatedAt: p.UpdatedAt,
	}
	if best, ok := p.MinPrice(); ok {
		item := newStorePriceItem(best)
		resp.MinPrice = &item
	}

	return resp
}

func newStorePriceItem(sp catalog.StorePrice) response.StorePriceItem {
	return response.StorePriceItem{
		Store:         sp.Store.String(),
		StoreName:     sp.Store.DisplayName(),
		URL:           sp.URL,
		Price:         sp.Price,
		Available:     sp.Available,
		LowestPrice:   sp.LowestPrice,
		LowestPriceAt: sp.LowestPriceAt,
		UpdatedAt:     sp.UpdatedAt,
	}
}
