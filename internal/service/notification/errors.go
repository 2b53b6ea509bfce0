package notification

import (
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/internal/service/contract"
)

var (
	// ErrServiceNotRunning 서비스가 시작되지 않았거나 종료 중입니다.
	ErrServiceNotRunning = apperrors.New(apperrors.Unavailable, "알림 서비스가 실행 중이 아닙니다")

	// ErrNotifierNotFound 요청한 ID의 Notifier가 등록되어 있지 않습니다.
	ErrNotifierNotFound = apperrors.New(apperrors.NotFound, "등록되지 않은 Notifier입니다")

	// ErrNotifierUnavailable Notifier 워커가 종료되어 발송할 수 없습니다.
	ErrNotifierUnavailable = apperrors.New(apperrors.Unavailable, "Notifier가 중지되어 알림을 발송할 수 없습니다")
)

func newErrDuplicateNotifierID(id contract.NotifierID) error {
	return apperrors.Newf(apperrors.InvalidInput, "중복된 Notifier ID가 존재합니다: %s", id)
}

func newErrDefaultNotifierNotFound(id string) error {
	return apperrors.Newf(apperrors.NotFound, "기본 Notifier('%s')를 찾을 수 없습니다", id)
}

func newErrNotifierInitFailed(err error) error {
	return apperrors.Wrap(err, apperrors.Internal, "Notifier 초기화 중 에러가 발생했습니다")
}
