package middleware

import (
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"

	"github.com/darkkaiser/linkcompra-server/internal/service/api/constants"
	applog "github.com/darkkaiser/linkcompra-server/pkg/log"
)

// stackBufferSize panic 발생 시 스택 트레이스를 저장할 버퍼 크기 (4KB)
const stackBufferSize = 4 << 10

// PanicRecovery panic을 복구하고 로깅하는 미들웨어를 반환합니다.
//
// 핸들러에서 발생한 panic을 복구하여 서버 다운을 방지하고,
// 스택 트레이스와 함께 에러를 기록한 뒤 Echo 에러 핸들러로 500 응답을 위임합니다.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (returnErr error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				// http.ErrAbortHandler는 net/http가 처리하도록 다시 던집니다.
				if r == http.ErrAbortHandler {
					panic(r)
				}

				err := newErrPanicRecovered(r)

				stack := make([]byte, stackBufferSize)
				length := runtime.Stack(stack, false)

				fields := applog.Fields{
					"error":  err,
					"path":   c.Request().URL.Path,
					"method": c.Request().Method,
					"stack":  string(stack[:length]),
				}
				if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
					fields["request_id"] = requestID
				}

				applog.WithComponentAndFields(constants.ComponentMiddlewarePanicRecovery, fields).Error(constants.LogMsgPanicRecovered)

				returnErr = err
			}()

			return next(c)
		}
	}
}
