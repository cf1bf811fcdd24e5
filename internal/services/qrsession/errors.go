package qrsession

import "errors"

// Service errors
var (
	ErrNoIdentifier = errors.New("no valid QR identifier is available")
	ErrHostReported = errors.New("host reported a QR load error")
)
