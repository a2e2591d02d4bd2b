package safego

import (
	"runtime/debug"

	"go.uber.org/zap"
)

// Go runs fn on a new goroutine. A panic is logged with its stack before it
// is re-raised, so crashes behind a full-screen UI still leave a trace.
func Go(logger *zap.Logger, fn func()) {
	if logger == nil {
		logger = zap.NewNop()
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("goroutine panic",
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				_ = logger.Sync()
				panic(r)
			}
		}()
		fn()
	}()
}
