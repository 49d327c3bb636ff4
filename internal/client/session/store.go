package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storepulse/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/storepulse/internal/common"
	"github.com/dmitrijs2005/storepulse/internal/dbx"
	"github.com/dmitrijs2005/storepulse/internal/logging"
)

// Store is the Provider backed by the sqlite local store.
type Store struct {
	db  *sql.DB
	log logging.Logger
	now func() time.Time
}

func NewStore(db *sql.DB, log logging.Logger) *Store {
	return &Store{db: db, log: log, now: time.Now}
}

func (s *Store) repo(tx dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(tx)
}

// Read returns the persisted session or nil.
func (s *Store) Read(ctx context.Context) *Session {
	raw, err := s.repo(s.db).Get(ctx, common.SessionKey)
	if err != nil {
		s.log.Warn(ctx, "session unreadable, treating as logged out", "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}

	sess, err := Decode(raw)
	if err != nil {
		s.log.Warn(ctx, "session malformed, treating as logged out", "error", err)
		return nil
	}
	if sess.Expired(s.now()) {
		s.log.Info(ctx, "session token expired, treating as logged out", "tenant", sess.TenantID, "error", common.ErrTokenExpired)
		return nil
	}
	return sess
}

// Clear removes every persisted key.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo(s.db).Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Replace swaps the whole store for a store holding only sess, in one
// transaction.
func (s *Store) Replace(ctx context.Context, sess Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}
	raw, err := Encode(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		return repo.Set(ctx, common.SessionKey, raw)
	})
}
