package alert

import (
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
)

// ErrAlreadyRunning 이전 가격 점검이 아직 끝나지 않았습니다.
var ErrAlreadyRunning = apperrors.New(apperrors.Conflict, "가격 알림 점검이 이미 실행 중입니다")

func newErrLoadLeadsFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "활성 구독 목록을 불러오지 못했습니다")
}
