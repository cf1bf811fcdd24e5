// Package bridge implements the request/reply protocol between the checkout
// WebView and its native host. A request is correlated to its reply solely
// by action name; the host may answer on any of several channels, so the
// client subscribes to all of them before sending and settles exactly once
// on the first matching reply.
package bridge

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"skysunny/internal/models"
)

// Actions understood by the native host.
const (
	ActionRequestDraft    = "REQUEST_DRAFT"
	ActionRequestQRCodeID = "REQUEST_QR_CODE_ID"
	ActionRequestToken    = "REQUEST_TOKEN"
	ActionGoHome          = "GO_HOME"
	ActionGoStoreDetail   = "GO_STORE_DETAIL"
	ActionGoBack          = "GO_BACK"
)

// DefaultTimeout bounds how long a call waits for a matching reply.
const DefaultTimeout = 7 * time.Second

type Client struct {
	transports []Transport
	sources    []ReplySource
	timeout    time.Duration

	mu      sync.Mutex
	pending map[string]struct{}
}

type Option func(*Client)

// WithTimeout overrides the default reply timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient creates a bridge client over the given transports and reply
// sources. Transports are tried in order on every send.
func NewClient(transports []Transport, sources []ReplySource, opts ...Option) *Client {
	c := &Client{
		transports: transports,
		sources:    sources,
		timeout:    DefaultTimeout,
		pending:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Call performs a single request/reply exchange. The first matching reply
// with ok=true resolves with its data; a matching reply with ok=false
// rejects with the host's error. Replies for other actions and malformed
// replies are ignored. Every settlement path releases all subscriptions.
//
// The reply protocol has no request id, so a second call for an action that
// is already in flight is rejected instead of being allowed to race.
func (c *Client) Call(ctx context.Context, action string, payload map[string]interface{}) (map[string]interface{}, error) {
	if action == "" {
		return nil, ErrEmptyAction
	}
	if err := c.acquire(action); err != nil {
		return nil, err
	}
	defer c.release(action)

	st := &settlement{done: make(chan struct{})}
	cancels := make([]func(), 0, len(c.sources))
	for _, src := range c.sources {
		src := src
		cancels = append(cancels, src.Subscribe(func(reply models.BridgeReply) {
			if reply.Action == "" {
				log.Printf("bridge: malformed reply on %s channel, ignoring", src.Name())
				return
			}
			if reply.Action != action {
				return
			}
			if !reply.OK {
				msg := reply.Error
				if msg == "" {
					msg = "no reason given"
				}
				st.reject(fmt.Errorf("%w: %s: %s", ErrHostRejected, action, msg))
				return
			}
			st.resolve(reply.Data)
		}))
	}
	defer func() {
		for _, cancel := range cancels {
			cancel()
		}
	}()

	if err := c.send(models.BridgeRequest{Action: action, Payload: payload}); err != nil {
		return nil, err
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()
	select {
	case <-st.done:
		return st.data, st.err
	case <-ctx.Done():
		return nil, fmt.Errorf("bridge call %s cancelled: %w", action, ctx.Err())
	case <-timer.C:
		log.Printf("bridge: %s timed out after %s", action, c.timeout)
		return nil, fmt.Errorf("%w: no %s reply within %s", ErrTimeout, action, c.timeout)
	}
}

// Notify sends a request without waiting for a reply. Used for navigation
// intents and for prompting the host to push data later.
func (c *Client) Notify(action string, payload map[string]interface{}) error {
	if action == "" {
		return ErrEmptyAction
	}
	return c.send(models.BridgeRequest{Action: action, Payload: payload})
}

func (c *Client) send(req models.BridgeRequest) error {
	for _, t := range c.transports {
		if !t.Available() {
			continue
		}
		if err := t.Send(req); err != nil {
			return fmt.Errorf("failed to send %s via %s: %w", req.Action, t.Name(), err)
		}
		log.Printf("bridge: sent %s via %s", req.Action, t.Name())
		return nil
	}
	return fmt.Errorf("%w: cannot send %s", ErrUnavailable, req.Action)
}

func (c *Client) acquire(action string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.pending[action]; busy {
		return fmt.Errorf("%w: %s", ErrDuplicateAction, action)
	}
	c.pending[action] = struct{}{}
	return nil
}

func (c *Client) release(action string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, action)
}

// settlement settles at most once no matter how many channels fire.
type settlement struct {
	once sync.Once
	done chan struct{}
	data map[string]interface{}
	err  error
}

func (s *settlement) resolve(data map[string]interface{}) {
	s.once.Do(func() {
		s.data = data
		close(s.done)
	})
}

func (s *settlement) reject(err error) {
	s.once.Do(func() {
		s.err = err
		close(s.done)
	})
}
