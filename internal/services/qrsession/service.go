// Package qrsession resolves the entry credential for a paid pass: fetch by
// identifier when one is available, otherwise ask the native host and wait
// for a push. All push shapes are normalized into one session record.
package qrsession

import (
	"context"
	"fmt"
	"log"
	"time"

	"skysunny/internal/bridge"
	"skysunny/internal/store"
	"skysunny/internal/utils"
)

// Push type names the host may use.
var (
	fullPayloadKinds = map[string]bool{"QR_DATA": true, "QR_CODE_PAYLOAD": true, "PAY_COMPLETE_QR": true}
	idTokenKinds     = map[string]bool{"QR_CODE_ID": true, "TOKEN": true, "REQUEST_QR_CODE_ID_RES": true}
	errorKind        = "QR_ERROR"
)

// API is the QR endpoint surface this service consumes.
type API interface {
	QRCode(ctx context.Context, aggregateID int64) (map[string]interface{}, error)
}

type Service struct {
	api      API
	notifier bridge.Notifier
	store    store.Store
	now      func() time.Time

	boot    Boot
	updates chan Update
}

func NewService(api API, notifier bridge.Notifier, st store.Store) *Service {
	if api == nil {
		panic("qr api is required")
	}
	if notifier == nil {
		panic("bridge notifier is required")
	}
	if st == nil {
		panic("store is required")
	}
	return &Service{
		api:      api,
		notifier: notifier,
		store:    st,
		now:      time.Now,
		updates:  make(chan Update, 8),
	}
}

// Updates delivers normalized sessions and load errors to the screen.
func (s *Service) Updates() <-chan Update { return s.updates }

// Boot starts resolution. With an identifier at hand the session is fetched
// immediately; otherwise the host is asked to push the identifier and, when
// no token is known yet, an auth token. There is no polling — the host
// pushes when ready.
func (s *Service) Boot(ctx context.Context, boot Boot) error {
	s.boot = boot
	log.Printf("qrsession: boot aggregateId=%d storeId=%d token=%s",
		boot.AggregateID, boot.StoreID, utils.TokenPreview(boot.Token))

	if boot.Token != "" {
		s.saveToken(ctx, boot.Token)
	}
	if boot.AggregateID > 0 {
		return s.fetch(ctx, boot.AggregateID)
	}

	if err := s.notifier.Notify(bridge.ActionRequestQRCodeID, map[string]interface{}{}); err != nil {
		return fmt.Errorf("failed to request QR identifier from host: %w", err)
	}
	if boot.Token == "" {
		if err := s.notifier.Notify(bridge.ActionRequestToken, map[string]interface{}{}); err != nil {
			return fmt.Errorf("failed to request auth token from host: %w", err)
		}
	}
	return nil
}

// HandleMessage processes one host push. Three shapes are accepted: a full
// session payload, an id+token pair prompting a follow-up fetch, and an
// explicit error.
func (s *Service) HandleMessage(ctx context.Context, msg Message) {
	kind := msg.Kind()
	switch {
	case fullPayloadKinds[kind]:
		s.emit(Update{Session: Normalize(msg.Payload, s.now())})

	case idTokenKinds[kind]:
		id := firstInt64(msg.Payload, []string{"aggregateId", "id"})
		token := firstString(msg.Payload, []string{"token", "accessToken", "authToken"})
		if token == "" {
			token = s.boot.Token
		}
		if token != "" {
			s.saveToken(ctx, token)
		}
		if id == 0 {
			id = s.boot.AggregateID
		}
		if id == 0 {
			log.Printf("qrsession: %s push carried no identifier", kind)
			return
		}
		if err := s.fetch(ctx, id); err != nil {
			s.emit(Update{Err: err})
		}

	case kind == errorKind:
		reason := firstString(msg.Payload, []string{"message", "error", "reason"})
		if reason == "" {
			reason = "no reason given"
		}
		s.emit(Update{Err: fmt.Errorf("%w: %s", ErrHostReported, reason)})

	default:
		log.Printf("qrsession: ignoring host message %q", kind)
	}
}

// GoStoreDetail asks the host to navigate to the store screen. Used by the
// close button; fire-and-forget.
func (s *Service) GoStoreDetail() error {
	return bridge.GoStoreDetail(s.notifier, s.boot.StoreID, s.boot.StoreName)
}

func (s *Service) fetch(ctx context.Context, aggregateID int64) error {
	if aggregateID <= 0 {
		return ErrNoIdentifier
	}
	raw, err := s.api.QRCode(ctx, aggregateID)
	if err != nil {
		return fmt.Errorf("failed to load QR session %d: %w", aggregateID, err)
	}
	s.emit(Update{Session: Normalize(raw, s.now())})
	return nil
}

func (s *Service) emit(u Update) {
	select {
	case s.updates <- u:
	default:
		log.Printf("qrsession: dropping update, consumer is not reading")
	}
}

func (s *Service) saveToken(ctx context.Context, token string) {
	if err := s.store.Set(ctx, store.KeyAccessToken, token); err != nil {
		log.Printf("qrsession: failed to persist token: %v", err)
	}
}
