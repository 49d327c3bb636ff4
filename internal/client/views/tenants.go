package views

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/storepulse/internal/client/aggregate"
	"github.com/dmitrijs2005/storepulse/internal/client/client"
	"github.com/dmitrijs2005/storepulse/internal/client/models"
	"github.com/dmitrijs2005/storepulse/internal/client/resource"
	"github.com/dmitrijs2005/storepulse/internal/client/session"
	"github.com/dmitrijs2005/storepulse/internal/logging"
)

const (
	MemberTenants = "tenants"

	maxTenantFetches = 8
)

// Tenants is the admin listing of every tenant.
type Tenants struct {
	*aggregate.Group

	sess    *session.Session
	tenants *resource.Resource[[]models.Tenant]
}

func NewTenants(ctx context.Context, c client.Client, log logging.Logger, sess *session.Session) *Tenants {
	t := &Tenants{
		Group:   aggregate.New(),
		sess:    sess,
		tenants: resource.New[[]models.Tenant](ctx, c, log.With("view", "tenants")),
	}
	t.Add(MemberTenants, t.tenants)
	return t
}

// Load binds the listing. Without a session it stays idle.
func (t *Tenants) Load() {
	if t.sess == nil {
		t.tenants.Bind(nil)
		return
	}
	t.tenants.Bind(get(t.sess, client.TenantsPath))
}

func (t *Tenants) Data() []models.Tenant {
	if v := t.tenants.State().Data; v != nil {
		return *v
	}
	return nil
}

// CustomersByTenant lists every tenant and then fetches the customers of
// all of them concurrently. The result keeps tenant order. The first
// failure cancels the remaining fetches.
func CustomersByTenant(ctx context.Context, c client.Client, sess *session.Session) ([]models.Customer, error) {
	tenants, err := client.Fetch[[]models.Tenant](ctx, c, *get(sess, client.TenantsPath))
	if err != nil {
		return nil, err
	}
	if len(tenants) == 0 {
		return []models.Customer{}, nil
	}

	perTenant := make([][]models.Customer, len(tenants))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(maxTenantFetches)
	for i, tenant := range tenants {
		eg.Go(func() error {
			customers, err := client.Fetch[[]models.Customer](ctx, c, *get(sess, client.CustomersPath(tenant.Key())))
			if err != nil {
				return err
			}
			perTenant[i] = customers
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := make([]models.Customer, 0)
	for _, cs := range perTenant {
		out = append(out, cs...)
	}
	return out, nil
}
