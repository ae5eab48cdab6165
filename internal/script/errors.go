package script

import "errors"

var (
	// ErrClosed is returned when running on a closed Runner.
	ErrClosed = errors.New("script runner is closed")

	// ErrScript wraps errors raised by Lua code.
	ErrScript = errors.New("script error")
)
