package log

// callerPathPrefix 호출자 함수명에서 잘라낼 모듈 경로
const callerPathPrefix = "github.com/darkkaiser/linkcompra-server"

// NewProductionConfig 운영 환경용 로그 설정을 반환합니다.
func NewProductionConfig(appName string) Options {
	return Options{
		Name:  appName,
		Level: InfoLevel,

		MaxAge:     30,
		MaxSizeMB:  100,
		MaxBackups: 20,

		EnableCriticalLog: true,
		EnableVerboseLog:  true,
		EnableConsoleLog:  false,

		ReportCaller:     true,
		CallerPathPrefix: callerPathPrefix,
	}
}

// NewDevelopmentConfig 개발 환경용 로그 설정을 반환합니다.
// 모든 레벨을 콘솔로 출력하고, 로그 파일은 분리하지 않습니다.
func NewDevelopmentConfig(appName string) Options {
	return Options{
		Name:  appName,
		Level: TraceLevel,

		MaxAge:     1,
		MaxSizeMB:  50,
		MaxBackups: 5,

		EnableConsoleLog: true,

		ReportCaller:     true,
		CallerPathPrefix: callerPathPrefix,
	}
}
