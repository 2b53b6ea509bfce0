package subscription

import (
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
)

var (
	// ErrInvalidCredentials 비밀번호가 일치하지 않거나 해당 구독이 없습니다.
	// 구독 존재 여부가 드러나지 않도록 두 경우를 구분하지 않습니다.
	ErrInvalidCredentials = apperrors.New(apperrors.Unauthorized, "전화번호 또는 비밀번호가 올바르지 않습니다")

	ErrInvalidPassword    = apperrors.New(apperrors.InvalidInput, "비밀번호는 4바이트 이상 72바이트 이하여야 합니다")
	ErrInvalidTargetPrice = apperrors.New(apperrors.InvalidInput, "목표가는 0보다 커야 합니다")
	ErrProductIDRequired  = apperrors.New(apperrors.InvalidInput, "상품 ID는 비워둘 수 없습니다")
	ErrProductNotFound    = apperrors.New(apperrors.NotFound, "존재하지 않는 상품입니다")
)
