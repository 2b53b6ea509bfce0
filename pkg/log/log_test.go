package log

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHook_Fire 로그 레벨별 라우팅 규칙을 검증합니다.
func TestHook_Fire(t *testing.T) {
	tests := []struct {
		name         string
		level        Level
		wantMain     bool
		wantCritical bool
		wantVerbose  bool
	}{
		{"Info_MainOnly", InfoLevel, true, false, false},
		{"Warn_MainOnly", WarnLevel, true, false, false},
		{"Error_MainAndCritical", ErrorLevel, true, true, false},
		{"Debug_VerboseOnly", DebugLevel, false, false, true},
		{"Trace_VerboseOnly", TraceLevel, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mainBuf, criticalBuf, verboseBuf, consoleBuf bytes.Buffer
			h := &hook{
				mainWriter:     &mainBuf,
				criticalWriter: &criticalBuf,
				verboseWriter:  &verboseBuf,
				consoleWriter:  &consoleBuf,
				formatter:      &logrus.JSONFormatter{},
			}

			entry := logrus.NewEntry(logrus.New())
			entry.Level = tt.level
			entry.Message = "메시지"

			require.NoError(t, h.Fire(entry))

			assert.Equal(t, tt.wantMain, mainBuf.Len() > 0)
			assert.Equal(t, tt.wantCritical, criticalBuf.Len() > 0)
			assert.Equal(t, tt.wantVerbose, verboseBuf.Len() > 0)
			assert.Positive(t, consoleBuf.Len(), "콘솔은 모든 레벨을 출력해야 합니다")
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

// TestHook_Fire_WriteError Critical 기록이 실패해도 Main 기록은 수행되는지 검증합니다.
func TestHook_Fire_WriteError(t *testing.T) {
	var mainBuf bytes.Buffer
	h := &hook{
		mainWriter:     &mainBuf,
		criticalWriter: failingWriter{},
		formatter:      &logrus.JSONFormatter{},
	}

	entry := logrus.NewEntry(logrus.New())
	entry.Level = ErrorLevel

	err := h.Fire(entry)

	assert.Error(t, err)
	assert.Positive(t, mainBuf.Len())
}

func TestHook_Close(t *testing.T) {
	var mainBuf bytes.Buffer
	h := &hook{mainWriter: &mainBuf, formatter: &logrus.JSONFormatter{}}

	require.NoError(t, h.Close())

	entry := logrus.NewEntry(logrus.New())
	entry.Level = InfoLevel
	require.NoError(t, h.Fire(entry))

	assert.Zero(t, mainBuf.Len(), "닫힌 Hook은 기록하지 않아야 합니다")
}

type countingCloser struct{ n int }

func (c *countingCloser) Close() error { c.n++; return nil }

// TestCloser_Idempotent Close를 여러 번 호출해도 리소스는 한 번만 해제되는지 검증합니다.
func TestCloser_Idempotent(t *testing.T) {
	cc := &countingCloser{}
	c := &closer{closers: []io.Closer{cc}, hook: &hook{}}

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	assert.Equal(t, 1, cc.n)
	assert.True(t, c.hook.closed)
}

func TestOptions_Validate(t *testing.T) {
	t.Run("Failure_EmptyName", func(t *testing.T) {
		opts := Options{}
		assert.Error(t, opts.Validate())
	})

	t.Run("Failure_NegativeRotation", func(t *testing.T) {
		opts := Options{Name: "app", MaxAge: -1}
		assert.Error(t, opts.Validate())
	})

	t.Run("Failure_DirIsFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

		opts := Options{Name: "app", Dir: path}
		assert.Error(t, opts.Validate())
	})

	t.Run("Success_Profiles", func(t *testing.T) {
		prod := NewProductionConfig("app")
		dev := NewDevelopmentConfig("app")

		assert.NoError(t, prod.Validate())
		assert.NoError(t, dev.Validate())
		assert.True(t, prod.EnableCriticalLog)
		assert.True(t, dev.EnableConsoleLog)
	})
}

// TestWithComponentAndFields 전달된 필드 맵이 변경되지 않는지 검증합니다.
func TestWithComponentAndFields(t *testing.T) {
	fields := Fields{"key": "value"}

	entry := WithComponentAndFields("alert.monitor", fields)

	assert.Equal(t, "alert.monitor", entry.Data[componentKey])
	assert.Equal(t, "value", entry.Data["key"])
	assert.NotContains(t, fields, componentKey)
}

func TestNewTextFormatter_CallerPrefix(t *testing.T) {
	f := newTextFormatter("github.com/darkkaiser/linkcompra-server")

	function, _ := f.CallerPrettyfier(&runtime.Frame{
		Function: "github.com/darkkaiser/linkcompra-server/internal/service/alert.(*Monitor).CheckPrices",
		Line:     42,
	})

	assert.Equal(t, ".../internal/service/alert.(*Monitor).CheckPrices(line:42)", function)
}
