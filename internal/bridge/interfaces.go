package bridge

import (
	"context"

	"skysunny/internal/models"
)

// Transport is one way of delivering a request to the native host. The host
// environment decides which transports exist; the client sends through the
// first available one.
type Transport interface {
	Name() string
	Available() bool
	Send(req models.BridgeRequest) error
}

// ReplySource is one channel the host may deliver replies on. Subscribe
// registers a handler and returns its cancel function; after cancel the
// handler must never fire again.
type ReplySource interface {
	Name() string
	Subscribe(fn func(models.BridgeReply)) (cancel func())
}

// Caller is the request/reply surface consumed by the checkout services.
type Caller interface {
	Call(ctx context.Context, action string, payload map[string]interface{}) (map[string]interface{}, error)
}

// Notifier is the fire-and-forget surface for navigation intents and
// host-side pushes that expect no reply.
type Notifier interface {
	Notify(action string, payload map[string]interface{}) error
}
