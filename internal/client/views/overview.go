package views

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/storepulse/internal/client/aggregate"
	"github.com/dmitrijs2005/storepulse/internal/client/client"
	"github.com/dmitrijs2005/storepulse/internal/client/models"
	"github.com/dmitrijs2005/storepulse/internal/client/resource"
	"github.com/dmitrijs2005/storepulse/internal/client/session"
	"github.com/dmitrijs2005/storepulse/internal/common"
	"github.com/dmitrijs2005/storepulse/internal/logging"
)

const MemberDashboard = "dashboard"

// Syncer triggers a backend resynchronization.
type Syncer interface {
	Sync(ctx context.Context) error
}

// Overview is the tenant's own dashboard filtered by a date range.
type Overview struct {
	*aggregate.Group

	sess      *session.Session
	window    time.Duration
	now       func() time.Time
	dashboard *resource.Resource[models.DashboardSummary]

	mu  sync.Mutex
	rng models.DateRange
}

// NewOverview returns an idle view over the last window days. A nil sess
// keeps it idle for good.
func NewOverview(ctx context.Context, c client.Client, log logging.Logger, sess *session.Session, window time.Duration) *Overview {
	o := &Overview{
		Group:     aggregate.New(),
		sess:      sess,
		window:    window,
		now:       time.Now,
		dashboard: resource.New[models.DashboardSummary](ctx, c, log.With("view", "overview")),
	}
	o.rng = o.defaultRange()
	o.Add(MemberDashboard, o.dashboard)
	return o
}

func (o *Overview) defaultRange() models.DateRange {
	return models.LastWindow(o.now(), o.window)
}

// Load binds the dashboard to the current range.
func (o *Overview) Load() {
	o.bind(o.Range())
}

func (o *Overview) Range() models.DateRange {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rng
}

// SetRange applies r. Applying the range already shown refetches it.
func (o *Overview) SetRange(r models.DateRange) {
	o.mu.Lock()
	same := o.rng.FromString() == r.FromString() && o.rng.ToString() == r.ToString()
	o.rng = r
	o.mu.Unlock()

	if same && o.dashboard.Request() != nil {
		o.Refetch()
		return
	}
	o.bind(r)
}

// ClearRange restores the default window ending today.
func (o *Overview) ClearRange() {
	r := o.defaultRange()
	o.mu.Lock()
	o.rng = r
	o.mu.Unlock()
	o.bind(r)
}

// SyncAndRefresh runs s and refetches the dashboard once it succeeds.
func (o *Overview) SyncAndRefresh(ctx context.Context, s Syncer) error {
	if o.sess == nil {
		return common.ErrSessionAbsent
	}
	if err := s.Sync(ctx); err != nil {
		return err
	}
	o.Refetch()
	return nil
}

func (o *Overview) Data() *models.DashboardSummary {
	return o.dashboard.State().Data
}

func (o *Overview) bind(r models.DateRange) {
	if o.sess == nil || o.sess.TenantID == "" {
		o.dashboard.Bind(nil)
		return
	}
	o.dashboard.Bind(get(o.sess, client.DashboardPath(o.sess.TenantID, r)))
}
