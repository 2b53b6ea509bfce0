package errors

import (
	"path/filepath"
	"runtime"
)

// callerSkip runtime.Callers, captureStack, 공개 생성 함수(New/Wrap 등)를 건너뛰어
// 0번째 프레임이 호출자 위치가 되도록 합니다.
const callerSkip = 3

const maxStackDepth = 5

// StackFrame 단일 호출 프레임 정보입니다.
type StackFrame struct {
	File     string
	Line     int
	Function string
}

func captureStack(skip int) []StackFrame {
	pc := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return nil
	}

	frames := make([]StackFrame, 0, n)
	it := runtime.CallersFrames(pc[:n])
	for {
		f, more := it.Next()
		frames = append(frames, StackFrame{
			File:     filepath.Base(f.File),
			Line:     f.Line,
			Function: f.Function,
		})
		if !more {
			break
		}
	}
	return frames
}
