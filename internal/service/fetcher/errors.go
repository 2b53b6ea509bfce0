package fetcher

import (
	"fmt"

	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
)

var (
	// ErrMaxRetriesExceeded 재시도 횟수를 모두 소진했을 때 원인으로 포함됩니다.
	ErrMaxRetriesExceeded = apperrors.New(apperrors.Unavailable, "최대 재시도 횟수를 초과하였습니다")
)

func newErrMaxRetriesExceeded(cause error) error {
	return apperrors.Wrap(cause, apperrors.Unavailable, ErrMaxRetriesExceeded.Error())
}

func newErrRetryAfterExceeded(retryAfter, maxDelay string) error {
	return apperrors.New(apperrors.Unavailable, fmt.Sprintf("서버가 요구한 재시도 대기 시간(%s)이 허용 최대값(%s)을 초과하여 재시도를 중단합니다", retryAfter, maxDelay))
}

func newErrGetBodyFailed(err error) error {
	return apperrors.Wrap(err, apperrors.Internal, "재시도 요청 본문을 다시 만들 수 없습니다")
}

func newErrResponseBodyTooLarge(limit int64) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("응답 본문이 허용 크기(%d 바이트)를 초과하였습니다", limit))
}
