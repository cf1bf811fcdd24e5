package receipt

import "errors"

// Service errors
var (
	ErrNoOrderNumber = errors.New("no order number could be resolved")
)
