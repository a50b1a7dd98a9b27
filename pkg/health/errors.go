package health

import "errors"

var (
	// ErrCheckFailed marks a check that could not verify its target.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout marks a check that ran out the shared deadline.
	ErrCheckTimeout = errors.New("health: check timeout")
)
