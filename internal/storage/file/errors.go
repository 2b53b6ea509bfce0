package file

import (
	"fmt"

	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
)

var (
	// ErrPathTraversalDetected 생성된 파일 경로가 저장소 디렉토리를 벗어날 때 반환합니다.
	ErrPathTraversalDetected = apperrors.New(apperrors.Internal, "보안 정책 위반: 허용되지 않은 경로 접근 시도로 인해 요청이 차단되었습니다")

	// ErrEmptyID ID 없이 저장하려 할 때 반환합니다.
	ErrEmptyID = apperrors.New(apperrors.InvalidInput, "저장 실패: 엔티티 ID가 비어 있습니다")
)

func newErrDirectoryAccessFailed(err error, dir string) error {
	return apperrors.Wrap(err, apperrors.System, fmt.Sprintf("저장소 초기화 실패: 디렉토리 접근 불가 (%s)", dir))
}

func newErrPathResolutionFailed(err error) error {
	return apperrors.Wrap(err, apperrors.Internal, "보안 검증 실패: 파일 경로를 해석할 수 없습니다")
}

func newErrMarshalFailed(err error) error {
	return apperrors.Wrap(err, apperrors.Internal, "데이터 처리 실패: JSON 직렬화 중 오류가 발생했습니다")
}

func newErrUnmarshalFailed(err error, filename string) error {
	return apperrors.Wrap(err, apperrors.ParsingFailed, fmt.Sprintf("데이터 처리 실패: JSON 역직렬화 중 오류가 발생했습니다 (%s)", filename))
}

func newErrReadFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "데이터 조회 실패: 파일 읽기 중 오류가 발생했습니다")
}

func newErrWriteFailed(err error, stage string) error {
	return apperrors.Wrap(err, apperrors.System, fmt.Sprintf("데이터 저장 실패: %s 중 오류가 발생했습니다", stage))
}
