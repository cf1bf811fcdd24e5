package payment

import "context"

// Widget is the loaded third-party payment widget. Its internals are out of
// scope; RequestPayment ends with the browser navigating away.
type Widget interface {
	UpdateAmount(value int) error
	RequestPayment(ctx context.Context, req Request) error
}

// Loader loads the widget SDK for a client/customer key pair.
type Loader func(clientKey, customerKey string) (Widget, error)

// Request is the terminal payment request handed to the widget.
type Request struct {
	OrderID       string
	OrderName     string
	Amount        int
	CustomerName  string
	CustomerEmail string
	SuccessURL    string
	FailURL       string
}
