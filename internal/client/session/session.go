// Package session owns the persisted login record of the console.
//
// A Session is either fully present or absent. Every reader goes through a
// Provider, which folds "missing", "unparseable", "incomplete" and
// "expired" into the single answer nil: not logged in.
package session

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/storepulse/internal/client/client"
	"github.com/dmitrijs2005/storepulse/internal/common"
)

// Role selects which part of the authenticated area a session may see.
// The values are the ones the backend writes into the login response.
type Role string

const (
	RoleTenant Role = "isTenant"
	RoleAdmin  Role = "isAdmin"
)

func (r Role) Valid() bool {
	return r == RoleTenant || r == RoleAdmin
}

// PanelName is the heading of the role's side panel.
func (r Role) PanelName() string {
	switch r {
	case RoleTenant:
		return "UserPanel"
	case RoleAdmin:
		return "AdminPanel"
	default:
		return ""
	}
}

// Session is the record written by login and read by every view.
type Session struct {
	TenantID    string `json:"tenantId"`
	Role        Role   `json:"role"`
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	Email       string `json:"email"`
}

// AuthorizationHeader renders "{tokenType} {accessToken}". An empty token
// type defaults to Bearer.
func (s Session) AuthorizationHeader() string {
	tokenType := strings.TrimSpace(s.TokenType)
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return tokenType + " " + s.AccessToken
}

// Authorize returns req carrying the session's Authorization header.
func (s Session) Authorize(req client.Request) client.Request {
	return req.WithHeader(common.AuthorizationHeaderName, s.AuthorizationHeader())
}

// Validate reports whether s is complete enough to act on.
func (s Session) Validate() error {
	if !s.Role.Valid() {
		return fmt.Errorf("%w: %w %q", common.ErrMalformedSession, common.ErrUnknownRole, s.Role)
	}
	if s.AccessToken == "" {
		return fmt.Errorf("%w: empty access token", common.ErrMalformedSession)
	}
	if s.Role == RoleTenant && s.TenantID == "" {
		return fmt.Errorf("%w: tenant session without tenant id", common.ErrMalformedSession)
	}
	return nil
}

// ExpiresAt reads the exp claim of a JWT access token without verifying its
// signature. Opaque tokens report ok == false.
func (s Session) ExpiresAt() (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Expired reports whether the token carries an exp claim at or before now.
func (s Session) Expired(now time.Time) bool {
	exp, ok := s.ExpiresAt()
	return ok && !now.Before(exp)
}

// Decode parses a persisted record. Any failure wraps
// common.ErrMalformedSession.
func Decode(raw []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrMalformedSession, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Encode serializes s for persistence.
func Encode(s Session) ([]byte, error) {
	return json.Marshal(s)
}
