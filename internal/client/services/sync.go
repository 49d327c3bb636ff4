// Package services contains the console's application services: the
// backend resynchronization action and the local session lifecycle.
package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/storepulse/internal/client/client"
	"github.com/dmitrijs2005/storepulse/internal/client/models"
	"github.com/dmitrijs2005/storepulse/internal/client/session"
	"github.com/dmitrijs2005/storepulse/internal/common"
	"github.com/dmitrijs2005/storepulse/internal/logging"
)

const (
	MsgSynced       = "Data synced successfully!"
	MsgSyncFailed   = "Failed to sync data"
	MsgNoTenantData = "No tenant data found. Please login again."
)

// Notifier receives transient user messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// SyncService asks the backend to pull fresh data from the storefront.
//
// Sync reports its outcome both as an error and as a notification. It
// never changes the session.
type SyncService interface {
	Sync(ctx context.Context) error
}

type syncService struct {
	client   client.Client
	sessions session.Provider
	notifier Notifier
	log      logging.Logger
}

func NewSyncService(c client.Client, sessions session.Provider, notifier Notifier, log logging.Logger) SyncService {
	return &syncService{client: c, sessions: sessions, notifier: notifier, log: log}
}

// Sync posts the session's email to the sync endpoint.
func (s *syncService) Sync(ctx context.Context) error {
	sess := s.sessions.Read(ctx)
	if sess == nil {
		s.notifier.Error(MsgNoTenantData)
		return common.ErrSessionAbsent
	}

	req := sess.Authorize(client.Request{
		Path:   client.SyncPath,
		Method: http.MethodPost,
		Body:   models.SyncRequest{Email: sess.Email},
	})
	if err := s.client.Do(ctx, req, nil); err != nil {
		s.log.Warn(ctx, "sync failed", "tenant", sess.TenantID, "error", err)
		s.notifier.Error(MsgSyncFailed)
		return fmt.Errorf("sync: %w", err)
	}

	s.log.Info(ctx, "sync requested", "tenant", sess.TenantID)
	s.notifier.Success(MsgSynced)
	return nil
}
