package scheduler

import (
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
)

var (
	// ErrNotificationSenderNotInitialized 작업 실패를 알릴 NotificationSender 없이 시작하려 할 때 반환합니다.
	ErrNotificationSenderNotInitialized = apperrors.New(apperrors.Internal, "NotificationSender 객체가 초기화되지 않았습니다")
)

func newErrInvalidCronSpec(jobID, timeSpec string, cause error) error {
	return apperrors.Wrapf(cause, apperrors.InvalidInput, "스케줄 등록 실패: 잘못된 Cron 표현식입니다 (JobID=%s, TimeSpec='%s')", jobID, timeSpec)
}
