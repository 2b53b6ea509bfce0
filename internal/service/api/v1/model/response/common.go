package response

import apiresponse "github.com/darkkaiser/linkcompra-server/internal/service/api/model/response"

// v1 문서에서 공통 응답 형식을 같은 패키지 이름으로 참조하기 위한 별칭입니다.
type (
	ErrorResponse   = apiresponse.ErrorResponse
	SuccessResponse = apiresponse.SuccessResponse
)
