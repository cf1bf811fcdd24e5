package bridge

import (
	"encoding/json"
	"fmt"
	"sync"

	"skysunny/internal/models"
)

// ReplySourceName values for the three channels a host may answer on.
const (
	SourceEvent    = "event"    // skysunny:reply custom event
	SourceMessage  = "message"  // window postMessage, JSON tagged source:"skysunny"
	SourceCallback = "callback" // onSkysunnyReply global callback
)

// messageSourceTag marks window messages that belong to this protocol.
const messageSourceTag = "skysunny"

// Feed is a ReplySource the embedding host pushes replies into. One Feed is
// created per native channel and wired to the corresponding host callback.
type Feed struct {
	name string

	mu   sync.Mutex
	subs map[int]func(models.BridgeReply)
	next int
}

func NewFeed(name string) *Feed {
	return &Feed{name: name, subs: make(map[int]func(models.BridgeReply))}
}

func (f *Feed) Name() string { return f.name }

// Subscribe registers fn and returns its cancel function. Cancel is safe to
// call more than once.
func (f *Feed) Subscribe(fn func(models.BridgeReply)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.next
	f.next++
	f.subs[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
	}
}

// Push delivers a reply to every current subscriber.
func (f *Feed) Push(reply models.BridgeReply) {
	f.mu.Lock()
	fns := make([]func(models.BridgeReply), 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn(reply)
	}
}

// PushRaw decodes a raw window message and pushes it if it belongs to the
// protocol. Messages from other senders report ErrForeignReply.
func (f *Feed) PushRaw(raw []byte) error {
	reply, err := DecodeReply(raw)
	if err != nil {
		return err
	}
	f.Push(reply)
	return nil
}

// SubscriberCount reports how many handlers are currently registered.
func (f *Feed) SubscriberCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// DecodeReply parses a raw postMessage payload. The window channel is shared
// with arbitrary page messages, so anything without the skysunny source tag
// is rejected before the reply shape is inspected.
func DecodeReply(raw []byte) (models.BridgeReply, error) {
	var reply models.BridgeReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return models.BridgeReply{}, fmt.Errorf("failed to decode bridge reply: %w", err)
	}
	if reply.Source != messageSourceTag {
		return models.BridgeReply{}, ErrForeignReply
	}
	return reply, nil
}
