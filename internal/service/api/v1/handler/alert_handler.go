package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/darkkaiser/linkcompra-server/internal/pkg/phone"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/httputil"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/v1/model/request"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/v1/model/response"
	"github.com/darkkaiser/linkcompra-server/internal/service/subscription"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
)

// SubscribeHandler godoc
// @Summary 가격 알림 구독
// @Description 상품 가격이 목표가 미만으로 내려가면 WhatsApp으로 알림을 받도록 구독합니다.
// @Description 같은 전화번호와 상품의 구독이 이미 있으면 비밀번호 확인 후 목표가를 갱신하고 다시 활성화합니다.
// @Description
// @Description ```bash
// @Description curl -X POST "http://localhost:2443/api/v1/alerts" \
// @Description   -H "Content-Type: application/json" \
// @Description   -d '{"phone":"11987654321","password":"1234","product_id":"iphone-15-128gb","target_price":"3999.90"}'
// @Description ```
// @Tags Alert
// @Accept json
// @Produce json
// @Param alert body request.SubscribeRequest true "구독 정보"
// @Success 201 {object} response.AlertResponse "구독 완료"
// @Failure 400 {object} response.ErrorResponse "잘못된 요청 (전화번호, 비밀번호, 목표가 형식 오류)"
// @Failure 401 {object} response.ErrorResponse "기존 구독의 비밀번호 불일치"
// @Failure 404 {object} response.ErrorResponse "존재하지 않는 상품"
// @Failure 500 {object} response.ErrorResponse "서버 내부 오류"
// @Router /api/v1/alerts [post]
func (h *Handler) SubscribeHandler(c echo.Context) error {
	req := new(request.SubscribeRequest)
	if err := c.Bind(req); err != nil {
		return NewErrInvalidBody()
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	l, err := h.subscriptions.Subscribe(c.Request().Context(), subscription.SubscribeRequest{
		Phone:       req.Phone,
		Password:    req.Password,
		ProductID:   req.ProductID,
		TargetPrice: req.TargetPrice,
	})
	if err != nil {
		return translateError(err)
	}

	h.log(c).WithFields(applog.Fields{
		"lead_id":    l.ID,
		"product_id": l.ProductID,
	}).Info("가격 알림 구독 요청 처리 완료")

	return httputil.Created(c, response.AlertResponse{
		ID:          l.ID,
		Phone:       phone.Mask(l.Phone),
		ProductID:   l.ProductID,
		TargetPrice: l.TargetPrice,
	})
}

// UnsubscribeHandler godoc
// @Summary 가격 알림 해지
// @Description 전화번호와 비밀번호가 일치하면 해당 상품의 가격 알림 구독을 삭제합니다.
// @Tags Alert
// @Accept json
// @Produce json
// @Param alert body request.UnsubscribeRequest true "해지 정보"
// @Success 200 {object} response.SuccessResponse "해지 완료"
// @Failure 400 {object} response.ErrorResponse "잘못된 요청"
// @Failure 401 {object} response.ErrorResponse "전화번호 또는 비밀번호 불일치"
// @Failure 500 {object} response.ErrorResponse "서버 내부 오류"
// @Router /api/v1/alerts [delete]
func (h *Handler) UnsubscribeHandler(c echo.Context) error {
	req := new(request.UnsubscribeRequest)
	if err := c.Bind(req); err != nil {
		return NewErrInvalidBody()
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	err := h.subscriptions.Unsubscribe(c.Request().Context(), subscription.UnsubscribeRequest{
		Phone:     req.Phone,
		Password:  req.Password,
		ProductID: req.ProductID,
	})
	if err != nil {
		return translateError(err)
	}

	h.log(c).WithField("product_id", req.ProductID).Info("가격 알림 해지 요청 처리 완료")

	return httputil.Success(c)
}
