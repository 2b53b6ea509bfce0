package notifier

import (
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
)

var (
	// ErrQueueFull 발송 대기열이 가득 차서 enqueueTimeout 안에 요청을 넣지 못했습니다. (일시적 부하)
	ErrQueueFull = apperrors.New(apperrors.Unavailable, "현재 알림 발송 대기열이 가득 차서 요청을 처리할 수 없습니다. 잠시 후 다시 시도해 주세요")

	// ErrClosed Notifier가 종료되어 더 이상 요청을 받지 않습니다.
	ErrClosed = apperrors.New(apperrors.Unavailable, "알림 발송 채널이 종료되었기 때문에 새로운 요청을 수락할 수 없습니다")

	// ErrPanicRecovered 요청 등록 중 패닉이 발생하여 복구되었습니다.
	ErrPanicRecovered = apperrors.New(apperrors.Internal, "알림 요청 처리 중 예기치 않은 오류가 발생하여 안전하게 복구되었습니다")
)
