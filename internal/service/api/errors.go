package api

import (
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
)

var (
	// ErrNotificationSenderNotInitialized 서비스 시작 시 알림 서비스가 주입되지 않았을 때 반환합니다.
	ErrNotificationSenderNotInitialized = apperrors.New(apperrors.Internal, "NotificationSender 객체가 초기화되지 않았습니다")

	// ErrDependencyNotInitialized v1 핸들러가 사용하는 서비스 중 하나가 주입되지 않았을 때 반환합니다.
	ErrDependencyNotInitialized = apperrors.New(apperrors.Internal, "API 핸들러 의존성이 초기화되지 않았습니다")
)
