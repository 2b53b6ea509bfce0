package handler

import (
	"errors"

	"github.com/darkkaiser/linkcompra-server/internal/pkg/phone"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/constants"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/httputil"
	"github.com/darkkaiser/linkcompra-server/internal/service/offers"
	"github.com/darkkaiser/linkcompra-server/internal/service/subscription"
)

// NewErrInvalidBody 요청 본문이 올바른 JSON이 아니거나 필드 형식이 맞지 않을 때의 400 에러입니다.
func NewErrInvalidBody() error {
	return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
}

// NewErrProductNotFound 비교 상품이 존재하지 않을 때의 404 에러입니다.
func NewErrProductNotFound() error {
	return httputil.NewNotFoundError(constants.ErrMsgProductNotFound)
}

// clientErrors 서비스 계층의 알려진 에러를 클라이언트용 응답으로 변환하는 표입니다.
var clientErrors = []struct {
	target error
	toHTTP func() error
}{
	{phone.ErrInvalidPhone, func() error { return httputil.NewBadRequestError(constants.ErrMsgInvalidPhone) }},
	{subscription.ErrInvalidPassword, func() error { return httputil.NewBadRequestError(constants.ErrMsgInvalidPassword) }},
	{subscription.ErrInvalidTargetPrice, func() error { return httputil.NewBadRequestError(constants.ErrMsgInvalidTargetPrice) }},
	{subscription.ErrProductIDRequired, func() error { return httputil.NewBadRequestError(constants.ErrMsgBadRequest) }},
	{subscription.ErrInvalidCredentials, func() error { return httputil.NewUnauthorizedError(constants.ErrMsgInvalidCredentials) }},
	{subscription.ErrProductNotFound, NewErrProductNotFound},
	{offers.ErrEmptyQuery, func() error { return httputil.NewBadRequestError(constants.ErrMsgEmptyQuery) }},
	{offers.ErrAllProvidersFailed, func() error { return httputil.NewServiceUnavailableError(constants.ErrMsgOffersUnavailable) }},
	{offers.ErrNoProviders, func() error { return httputil.NewServiceUnavailableError(constants.ErrMsgOffersUnavailable) }},
}

// translateError 알려진 에러는 전용 메시지로 바꾸고, 나머지는 전역 에러 핸들러가
// apperrors 분류에 따라 처리하도록 그대로 반환합니다.
func translateError(err error) error {
	for _, ce := range clientErrors {
		if errors.Is(err, ce.target) {
			return ce.toHTTP()
		}
	}
	return err
}
