package cli

import (
	"context"

	"github.com/dmitrijs2005/storepulse/internal/client/aggregate"
	"github.com/dmitrijs2005/storepulse/internal/client/router"
	"github.com/dmitrijs2005/storepulse/internal/client/session"
	"github.com/dmitrijs2005/storepulse/internal/client/views"
)

const (
	msgDashboardFailed = "Failed to load dashboard data"
	msgTenantsFailed   = "Failed to fetch tenants"
)

// screen is the view mounted for one router decision. At most one of the
// view fields is set.
type screen struct {
	decision router.Decision
	session  *session.Session

	overview  *views.Overview
	tenants   *views.Tenants
	analytics *views.Analytics
}

func (s *screen) group() *aggregate.Group {
	switch {
	case s.analytics != nil:
		return s.analytics.Group
	case s.overview != nil:
		return s.overview.Group
	case s.tenants != nil:
		return s.tenants.Group
	default:
		return nil
	}
}

func (s *screen) close() {
	if g := s.group(); g != nil {
		g.Close()
	}
}

func (a *App) unmount() {
	if a.screen != nil {
		a.screen.close()
		a.screen = nil
	}
}

// mount replaces the current screen with the view d selects and starts
// loading it. The session is read once for the whole mount.
func (a *App) mount(ctx context.Context, d router.Decision) {
	a.unmount()

	s := &screen{decision: d}
	a.screen = s
	if !d.Authenticated() {
		return
	}
	s.session = a.store.Read(ctx)
	if s.session == nil {
		return
	}

	switch d.View.Path {
	case router.DashboardPath:
		s.overview = views.NewOverview(ctx, a.client, a.log, s.session, a.config.DashboardWindow)
		s.overview.Load()
	case router.TenantsPath:
		s.tenants = views.NewTenants(ctx, a.client, a.log, s.session)
		s.tenants.Load()
	}
}

// mountAnalytics swaps the current view for the analytics of tenantID,
// keeping the router decision.
func (a *App) mountAnalytics(ctx context.Context, tenantID string) {
	d := a.layout.Render()
	a.unmount()

	s := &screen{decision: d, session: a.store.Read(ctx)}
	a.screen = s
	s.analytics = views.NewAnalytics(ctx, a.client, a.log, views.AnalyticsOptions{
		TopCustomersLimit: a.config.TopCustomersLimit,
		Session:           s.session,
	})
	s.analytics.Load(tenantID)
}

// show waits for the mounted view to settle and prints it.
func (a *App) show(ctx context.Context) error {
	s := a.screen
	if s == nil {
		return nil
	}
	a.println(renderFrame(a.styles, s.decision, s.session))

	if !s.decision.Authenticated() {
		a.println(renderLoginNotice(a.styles))
		return nil
	}

	g := s.group()
	if g == nil {
		return nil
	}
	if g.Snapshot().Loading {
		a.println(renderLoading(a.styles))
	}
	if err := g.Wait(ctx); err != nil {
		return err
	}

	snap := g.Snapshot()
	if snap.Err != nil {
		a.println(renderError(a.styles, snap))
		switch {
		case s.overview != nil:
			a.notes.Error(msgDashboardFailed)
		case s.tenants != nil:
			a.notes.Error(msgTenantsFailed)
		}
		return nil
	}

	switch {
	case s.analytics != nil:
		a.println(renderAnalytics(a.styles, s.analytics.TenantID(), s.analytics.Data()))
	case s.overview != nil:
		a.println(renderOverview(a.styles, s.overview.Data(), s.overview.Range()))
	case s.tenants != nil:
		a.println(renderTenants(a.styles, s.tenants.Data()))
	}
	return nil
}
