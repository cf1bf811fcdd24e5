package draft

import "errors"

// Service errors
var (
	ErrMissingProduct = errors.New("product id is missing")
	ErrMissingTarget  = errors.New("a seat, locker or room target is required for this pass type")
	ErrNoOrderNumber  = errors.New("host returned a draft without an order number")
)
