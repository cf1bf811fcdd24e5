package bridge

import "skysunny/internal/models"

// Loopback is an in-process Transport backed by a handler function. Tests
// and the host simulator use it in place of a real WebView bridge; the
// handler answers by pushing into whichever Feed it chooses.
type Loopback struct {
	name    string
	handler func(models.BridgeRequest)
}

func NewLoopback(name string, handler func(models.BridgeRequest)) *Loopback {
	return &Loopback{name: name, handler: handler}
}

func (l *Loopback) Name() string { return l.name }

func (l *Loopback) Available() bool { return l.handler != nil }

func (l *Loopback) Send(req models.BridgeRequest) error {
	// Replies arrive asynchronously, as they would from a real host.
	go l.handler(req)
	return nil
}
