package session

import "context"

// Provider is the single access point to the persisted session.
//
// Read never fails: an absent, malformed or expired record is reported as
// nil. Clear wipes the whole local store, not only the session key.
type Provider interface {
	Read(ctx context.Context) *Session
	Clear(ctx context.Context) error
}

// Writer is implemented by providers that accept a full-record replacement.
// Only the login flow writes.
type Writer interface {
	Replace(ctx context.Context, s Session) error
}
