package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/storepulse/internal/client/models"
	"github.com/dmitrijs2005/storepulse/internal/client/router"
	"github.com/dmitrijs2005/storepulse/internal/client/session"
	"github.com/dmitrijs2005/storepulse/internal/client/views"
	"github.com/dmitrijs2005/storepulse/internal/common"
)

var (
	errNotOnDashboard = errors.New("only available on the dashboard")
	errAdminOnly      = errors.New("only available to admins")
)

// Start mounts the layout root, as opening the console does.
func (a *App) Start(ctx context.Context) error {
	return a.Go(ctx, common.LayoutRoot)
}

// guard re-reads the session before a command. If it disappeared since
// the last navigation the console falls back to the login notice; if one
// appeared, the layout is mounted again.
func (a *App) guard(ctx context.Context) (*session.Session, bool) {
	sess := a.store.Read(ctx)
	d := a.layout.Render()

	if sess == nil {
		if d.Authenticated() {
			a.mount(ctx, a.layout.Reload(ctx))
			_ = a.show(ctx)
		} else {
			a.notes.Error(router.MsgPleaseLogin)
		}
		return nil, false
	}
	if !d.Authenticated() {
		a.mount(ctx, a.layout.Reload(ctx))
	}
	return sess, true
}

// Go navigates to path and shows whatever the router allows there.
func (a *App) Go(ctx context.Context, path string) error {
	if !strings.HasPrefix(path, "/") {
		path = common.LayoutRoot + "/" + path
	}
	// A session that appeared or vanished since the last navigation
	// invalidates the cached decision, even for the same path.
	stale := a.screen != nil && router.StateOf(a.store.Read(ctx)) != a.layout.Render().State
	if stale {
		if d := a.layout.Reload(ctx); !d.Authenticated() {
			a.mount(ctx, d)
			return a.show(ctx)
		}
	}

	d := a.layout.Navigate(ctx, path)
	if stale || a.screen == nil || a.screen.decision.Path != d.Path || a.screen.analytics != nil {
		a.mount(ctx, d)
	}
	return a.show(ctx)
}

// Refresh refetches every resource of the mounted view.
func (a *App) Refresh(ctx context.Context) error {
	if _, ok := a.guard(ctx); !ok {
		return nil
	}
	if g := a.screen.group(); g != nil {
		g.Refetch()
	}
	return a.show(ctx)
}

// Tenant shows the analytics view of tenantID.
func (a *App) Tenant(ctx context.Context, tenantID string) error {
	if _, ok := a.guard(ctx); !ok {
		return nil
	}
	a.mountAnalytics(ctx, tenantID)
	return a.show(ctx)
}

// Filter applies a date range to the tenant dashboard.
func (a *App) Filter(ctx context.Context, from, to string) error {
	if _, ok := a.guard(ctx); !ok {
		return nil
	}
	if a.screen.overview == nil {
		return errNotOnDashboard
	}
	rng, err := models.ParseDateRange(from, to)
	if err != nil {
		return err
	}
	a.screen.overview.SetRange(rng)
	return a.show(ctx)
}

// ClearFilter restores the default dashboard range.
func (a *App) ClearFilter(ctx context.Context) error {
	if _, ok := a.guard(ctx); !ok {
		return nil
	}
	if a.screen.overview == nil {
		return errNotOnDashboard
	}
	a.screen.overview.ClearRange()
	return a.show(ctx)
}

// Sync asks the backend to resynchronize. On the dashboard it refreshes
// the view afterwards.
func (a *App) Sync(ctx context.Context) error {
	if _, ok := a.guard(ctx); !ok {
		return nil
	}
	// Failures reach the user as notifications.
	if o := a.screen.overview; o != nil {
		if err := o.SyncAndRefresh(ctx, a.syncService); err == nil {
			return a.show(ctx)
		}
		return nil
	}
	_ = a.syncService.Sync(ctx)
	return nil
}

// Customers lists the customers of every tenant.
func (a *App) Customers(ctx context.Context) error {
	sess, ok := a.guard(ctx)
	if !ok {
		return nil
	}
	if sess.Role != session.RoleAdmin {
		return errAdminOnly
	}
	a.println(renderLoading(a.styles))
	customers, err := views.CustomersByTenant(ctx, a.client, sess)
	if err != nil {
		a.log.Warn(ctx, "customers by tenant failed", "error", err)
		a.notes.Error("Failed to fetch customers")
		return nil
	}
	a.println(renderCustomers(a.styles, customers))
	return nil
}

// WhoAmI prints the stored session.
func (a *App) WhoAmI(ctx context.Context) error {
	sess, ok := a.guard(ctx)
	if !ok {
		return nil
	}
	a.println(renderSession(a.styles, sess))
	return nil
}

// Logout wipes the local store and shows the login notice.
func (a *App) Logout(ctx context.Context) error {
	d, err := a.layout.Logout(ctx)
	a.mount(ctx, d)
	if showErr := a.show(ctx); showErr != nil {
		return showErr
	}
	return err
}
