package bridge

import "errors"

// Client errors
var (
	ErrUnavailable     = errors.New("native bridge is not available")
	ErrTimeout         = errors.New("native bridge reply timed out")
	ErrHostRejected    = errors.New("native host rejected the request")
	ErrDuplicateAction = errors.New("a request for this action is already pending")
	ErrEmptyAction     = errors.New("bridge action must not be empty")
	ErrForeignReply    = errors.New("message is not a skysunny reply")
)
