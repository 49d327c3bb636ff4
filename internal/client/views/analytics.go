package views

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/storepulse/internal/client/aggregate"
	"github.com/dmitrijs2005/storepulse/internal/client/client"
	"github.com/dmitrijs2005/storepulse/internal/client/models"
	"github.com/dmitrijs2005/storepulse/internal/client/resource"
	"github.com/dmitrijs2005/storepulse/internal/client/session"
	"github.com/dmitrijs2005/storepulse/internal/logging"
)

const (
	MemberCustomers    = "customers"
	MemberTotalOrders  = "totalOrders"
	MemberTotalRevenue = "totalRevenue"
	MemberOrdersTrend  = "ordersTrend"
	MemberTopCustomers = "topCustomers"
	MemberProducts     = "products"
)

// AnalyticsData holds one field per member. A nil field has not loaded.
type AnalyticsData struct {
	Customers    []models.Customer
	TotalOrders  *models.Total
	TotalRevenue *models.Total
	OrdersTrend  []models.TrendPoint
	TopCustomers []models.TopCustomer
	Products     []models.Product
}

type AnalyticsOptions struct {
	// TopCustomersLimit is the limit query parameter of top-customers.
	TopCustomersLimit int
	// Session, when set, authorizes every member request.
	Session *session.Session
}

// Analytics is the per-tenant analytics dashboard: six resources scoped by
// one tenant id.
type Analytics struct {
	*aggregate.Group

	opts AnalyticsOptions

	customers    *resource.Resource[[]models.Customer]
	totalOrders  *resource.Resource[models.Total]
	totalRevenue *resource.Resource[models.Total]
	ordersTrend  *resource.Resource[[]models.TrendPoint]
	topCustomers *resource.Resource[[]models.TopCustomer]
	products     *resource.Resource[[]models.Product]

	mu       sync.Mutex
	tenantID string
}

// NewAnalytics returns an idle view. Call Load to bind it to a tenant.
func NewAnalytics(ctx context.Context, c client.Client, log logging.Logger, opts AnalyticsOptions) *Analytics {
	if opts.TopCustomersLimit <= 0 {
		opts.TopCustomersLimit = 5
	}
	log = log.With("view", "analytics")

	a := &Analytics{
		Group:        aggregate.New(),
		opts:         opts,
		customers:    resource.New[[]models.Customer](ctx, c, log),
		totalOrders:  resource.New[models.Total](ctx, c, log),
		totalRevenue: resource.New[models.Total](ctx, c, log),
		ordersTrend:  resource.New[[]models.TrendPoint](ctx, c, log),
		topCustomers: resource.New[[]models.TopCustomer](ctx, c, log),
		products:     resource.New[[]models.Product](ctx, c, log),
	}
	a.Add(MemberCustomers, a.customers)
	a.Add(MemberTotalOrders, a.totalOrders)
	a.Add(MemberTotalRevenue, a.totalRevenue)
	a.Add(MemberOrdersTrend, a.ordersTrend)
	a.Add(MemberTopCustomers, a.topCustomers)
	a.Add(MemberProducts, a.products)
	return a
}

// Load scopes every member to tenantID. An empty id unbinds them all and
// issues no requests.
func (a *Analytics) Load(tenantID string) {
	a.mu.Lock()
	a.tenantID = tenantID
	a.mu.Unlock()

	if tenantID == "" {
		launch(
			a.customers.Prepare(nil),
			a.totalOrders.Prepare(nil),
			a.totalRevenue.Prepare(nil),
			a.ordersTrend.Prepare(nil),
			a.topCustomers.Prepare(nil),
			a.products.Prepare(nil),
		)
		return
	}

	s := a.opts.Session
	launch(
		a.customers.Prepare(get(s, client.CustomersPath(tenantID))),
		a.totalOrders.Prepare(get(s, client.TotalOrdersPath(tenantID))),
		a.totalRevenue.Prepare(get(s, client.TotalRevenuePath(tenantID))),
		a.ordersTrend.Prepare(get(s, client.OrdersTrendPath(tenantID))),
		a.topCustomers.Prepare(get(s, client.TopCustomersPath(tenantID, a.opts.TopCustomersLimit))),
		a.products.Prepare(get(s, client.ProductsPath(tenantID))),
	)
}

func (a *Analytics) TenantID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tenantID
}

func (a *Analytics) Data() AnalyticsData {
	var d AnalyticsData
	if v := a.customers.State().Data; v != nil {
		d.Customers = *v
	}
	if v := a.totalOrders.State().Data; v != nil {
		d.TotalOrders = v
	}
	if v := a.totalRevenue.State().Data; v != nil {
		d.TotalRevenue = v
	}
	if v := a.ordersTrend.State().Data; v != nil {
		d.OrdersTrend = *v
	}
	if v := a.topCustomers.State().Data; v != nil {
		d.TopCustomers = *v
	}
	if v := a.products.State().Data; v != nil {
		d.Products = *v
	}
	return d
}
