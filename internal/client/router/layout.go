package router

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/storepulse/internal/client/session"
	"github.com/dmitrijs2005/storepulse/internal/common"
	"github.com/dmitrijs2005/storepulse/internal/logging"
)

const (
	MsgPleaseLogin = "Please login."
	MsgLoggedOut   = "Logged out successfully!"
)

// Notifier receives transient user messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Layout is the authenticated shell. It holds the current path and the
// decision taken when the console navigated to it.
type Layout struct {
	sessions session.Provider
	notifier Notifier
	log      logging.Logger

	mu       sync.Mutex
	mounted  bool
	path     string
	decision Decision
}

func NewLayout(sessions session.Provider, notifier Notifier, log logging.Logger) *Layout {
	return &Layout{sessions: sessions, notifier: notifier, log: log}
}

// Navigate evaluates path against a fresh session snapshot and follows
// the resulting redirect. Navigating to the current path returns the
// stored decision without evaluating again.
func (l *Layout) Navigate(ctx context.Context, path string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.mounted && path == l.path {
		return l.decision
	}
	return l.evaluateLocked(ctx, path)
}

// Reload re-evaluates the current path, as a remount would.
func (l *Layout) Reload(ctx context.Context) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()
	path := l.path
	if !l.mounted {
		path = common.LayoutRoot
	}
	return l.evaluateLocked(ctx, path)
}

// Render returns the decision of the last navigation. It never redirects.
func (l *Layout) Render() Decision {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.decision
}

func (l *Layout) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.path
}

// Logout wipes the local store and lands on the login path whatever the
// current state. A failed wipe is returned but does not stop the
// transition.
func (l *Layout) Logout(ctx context.Context) (Decision, error) {
	err := l.sessions.Clear(ctx)
	if err != nil {
		l.log.Error(ctx, "logout could not clear local store", "error", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.mounted = true
	l.path = common.LoginPath
	l.decision = Decision{State: Unauthenticated, Path: common.LoginPath, Reason: common.ErrSessionAbsent}
	l.notifier.Success(MsgLoggedOut)
	l.log.Info(ctx, "logged out")
	return l.decision, err
}

func (l *Layout) evaluateLocked(ctx context.Context, path string) Decision {
	sess := l.sessions.Read(ctx)
	d := Evaluate(path, sess)

	if d.State == Unauthenticated && path != common.LoginPath {
		l.notifier.Error(MsgPleaseLogin)
	}
	if d.Redirect != "" {
		l.log.Debug(ctx, "redirect", "from", path, "to", d.Redirect, "state", d.State.String())
	}

	l.mounted = true
	l.path = d.Path
	l.decision = d
	return d
}
