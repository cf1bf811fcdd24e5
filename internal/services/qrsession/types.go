package qrsession

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"skysunny/internal/models"
	"skysunny/internal/webctx"
)

// Boot is the identifier context available when the QR screen mounts.
type Boot struct {
	AggregateID int64
	Token       string
	StoreID     int
	StoreName   string
}

// BootContext gathers the boot identifiers, query first, injected global as
// fallback.
func BootContext(query url.Values, injected *webctx.Injected) Boot {
	if injected == nil {
		injected = &webctx.Injected{}
	}
	b := Boot{
		Token:     query.Get("token"),
		StoreName: injected.StoreName,
	}
	if v := query.Get("aggregateId"); v != "" {
		b.AggregateID, _ = strconv.ParseInt(v, 10, 64)
	} else if v := query.Get("id"); v != "" {
		b.AggregateID, _ = strconv.ParseInt(v, 10, 64)
	}
	if b.AggregateID == 0 {
		b.AggregateID = injected.AggregateID
	}
	if b.Token == "" {
		b.Token = injected.AccessToken
	}
	if v := query.Get("storeId"); v != "" {
		b.StoreID, _ = strconv.Atoi(v)
	}
	if b.StoreID == 0 {
		b.StoreID = injected.StoreID
	}
	return b
}

// Message is a push from the native host. Type may arrive under either the
// type or action key on the wire.
type Message struct {
	Type    string                 `json:"type"`
	Action  string                 `json:"action,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Kind returns the effective message type.
func (m Message) Kind() string {
	if m.Type != "" {
		return m.Type
	}
	return m.Action
}

// DecodeMessage parses a raw host push.
func DecodeMessage(raw []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(raw, &m); err != nil {
		return Message{}, fmt.Errorf("failed to decode host message: %w", err)
	}
	return m, nil
}

// Update is one state change delivered to the screen: a normalized session
// or a load error.
type Update struct {
	Session *models.QRSession
	Err     error
}
