package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storepulse/internal/client/session"
	"github.com/dmitrijs2005/storepulse/internal/common"
	"github.com/dmitrijs2005/storepulse/internal/logging"
)

// SessionStore is a session provider that also accepts a full replacement.
type SessionStore interface {
	session.Provider
	session.Writer
}

// SessionService is the local login collaborator. The backend issues the
// login response elsewhere; the console only stores it.
type SessionService interface {
	// Import stores s as the only local record.
	Import(ctx context.Context, s session.Session) error
	// ImportJSON stores a raw login response body.
	ImportJSON(ctx context.Context, raw []byte) error
	// Current returns the stored session or nil.
	Current(ctx context.Context) *session.Session
}

type sessionService struct {
	store SessionStore
	log   logging.Logger
	now   func() time.Time
}

func NewSessionService(store SessionStore, log logging.Logger) SessionService {
	return &sessionService{store: store, log: log, now: time.Now}
}

func (s *sessionService) Import(ctx context.Context, sess session.Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}
	if sess.Expired(s.now()) {
		return common.ErrTokenExpired
	}
	if err := s.store.Replace(ctx, sess); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	s.log.Info(ctx, "session imported", "role", string(sess.Role), "tenant", sess.TenantID)
	return nil
}

func (s *sessionService) ImportJSON(ctx context.Context, raw []byte) error {
	var sess session.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return fmt.Errorf("%w: %w", common.ErrMalformedSession, err)
	}
	return s.Import(ctx, sess)
}

func (s *sessionService) Current(ctx context.Context) *session.Session {
	return s.store.Read(ctx)
}
