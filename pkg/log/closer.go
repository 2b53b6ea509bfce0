package log

import (
	"errors"
	"io"
	"sync/atomic"
)

// closer 로그 파일 리소스를 한 번에 해제합니다.
// Hook을 먼저 닫아 종료 중인 파일에 대한 쓰기를 차단한 뒤, 각 파일을 Sync 후 Close 합니다.
type closer struct {
	closers []io.Closer

	hook *hook

	closed atomic.Bool
}

func (c *closer) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	if c.hook != nil {
		_ = c.hook.Close()
	}

	var errs error
	for _, cl := range c.closers {
		if cl == nil {
			continue
		}

		if s, ok := cl.(interface{ Sync() error }); ok {
			_ = s.Sync()
		}

		if err := cl.Close(); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	return errs
}
