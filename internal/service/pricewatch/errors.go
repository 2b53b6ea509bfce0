package pricewatch

import (
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
)

var (
	// ErrAlreadyRunning 이전 가격 갱신이 아직 끝나지 않았습니다.
	ErrAlreadyRunning = apperrors.New(apperrors.Conflict, "가격 갱신 작업이 이미 실행 중입니다")

	// ErrPriceNotFound 셀렉터, JSON-LD, meta 태그 어디에서도 가격을 찾지 못했습니다.
	ErrPriceNotFound = apperrors.New(apperrors.ParsingFailed, "페이지에서 가격 정보를 찾을 수 없습니다")
)
