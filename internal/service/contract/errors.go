package contract

import (
	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
)

var (
	// ErrNotFound 저장소에 요청한 엔티티가 없을 때 반환합니다.
	ErrNotFound = apperrors.New(apperrors.NotFound, "조회 실패: 요청한 데이터가 존재하지 않습니다")

	// ErrConflict 유일 키((phone, product_id), ean 등)가 충돌할 때 반환합니다.
	ErrConflict = apperrors.New(apperrors.Conflict, "저장 실패: 동일한 키를 가진 데이터가 이미 존재합니다")

	// ErrMessageRequired 알림 본문이 비어 있거나 공백뿐일 때 반환합니다.
	ErrMessageRequired = apperrors.New(apperrors.InvalidInput, "알림 메시지 본문은 비워둘 수 없습니다")

	// ErrRecipientRequired 수신자 지정이 필요한 채널(WhatsApp)에 수신자가 없을 때 반환합니다.
	ErrRecipientRequired = apperrors.New(apperrors.InvalidInput, "알림 수신자가 지정되지 않았습니다")
)
