// Package errors ErrorType 기반의 애플리케이션 에러를 제공합니다.
//
// 모든 에러는 ErrorType으로 분류되며 Wrap으로 컨텍스트를 누적합니다.
// API 계층은 UnderlyingType으로 체인의 가장 안쪽 분류를 꺼내 HTTP 상태 코드를 결정합니다.
//
//	if err != nil {
//	    return errors.Wrap(err, errors.System, "리드 저장 실패")
//	}
//
//	if errors.Is(err, errors.NotFound) { ... }
package errors

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// AppError 애플리케이션 표준 에러입니다.
type AppError struct {
	errType ErrorType
	message string
	cause   error
	stack   []StackFrame
}

func (e *AppError) Type() ErrorType { return e.errType }

func (e *AppError) Message() string { return e.message }

func (e *AppError) Stack() []StackFrame { return e.stack }

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.errType, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.errType, e.message)
}

func (e *AppError) Unwrap() error { return e.cause }

// Format %+v 출력 시 스택과 원인 체인을 함께 기록합니다.
// 스택은 체인의 끝(원인 없음)이거나 외부 에러와 맞닿은 AppError에서만 출력합니다.
func (e *AppError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if !s.Flag('+') {
			io.WriteString(s, e.Error())
			return
		}

		fmt.Fprintf(s, "[%s] %s", e.errType, e.message)

		var inner *AppError
		if (e.cause == nil || !errors.As(e.cause, &inner)) && len(e.stack) > 0 {
			fmt.Fprint(s, "\nStack trace:")
			for _, f := range e.stack {
				fn := f.Function
				if i := strings.LastIndex(fn, "/"); i != -1 {
					fn = fn[i+1:]
				}
				fmt.Fprintf(s, "\n\t%s:%d %s", f.File, f.Line, fn)
			}
		}

		if e.cause != nil {
			fmt.Fprint(s, "\nCaused by:\n")
			if f, ok := e.cause.(fmt.Formatter); ok {
				f.Format(s, verb)
			} else {
				fmt.Fprintf(s, "\t%v", e.cause)
			}
		}
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

func New(errType ErrorType, message string) error {
	return &AppError{errType: errType, message: message, stack: captureStack(callerSkip)}
}

func Newf(errType ErrorType, format string, args ...any) error {
	return &AppError{errType: errType, message: fmt.Sprintf(format, args...), stack: captureStack(callerSkip)}
}

// Wrap err이 nil이면 nil을 반환합니다.
func Wrap(err error, errType ErrorType, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{errType: errType, message: message, cause: err, stack: captureStack(callerSkip)}
}

func Wrapf(err error, errType ErrorType, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &AppError{errType: errType, message: fmt.Sprintf(format, args...), cause: err, stack: captureStack(callerSkip)}
}

// Is 체인 안에 errType으로 분류된 AppError가 있는지 확인합니다.
func Is(err error, errType ErrorType) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if appErr, ok := err.(*AppError); ok && appErr.errType == errType {
			return true
		}
	}
	return false
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// RootCause 체인의 가장 안쪽 에러를 반환합니다.
func RootCause(err error) error {
	if err == nil {
		return nil
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// UnderlyingType 체인에서 가장 안쪽 AppError의 분류를 반환합니다. 없으면 Unknown입니다.
//
//	err := Wrap(New(NotFound, "상품 없음"), Internal, "비교 조회 실패")
//	UnderlyingType(err) // NotFound
func UnderlyingType(err error) ErrorType {
	t := Unknown
	for ; err != nil; err = errors.Unwrap(err) {
		if appErr, ok := err.(*AppError); ok {
			t = appErr.errType
		}
	}
	return t
}
