package client

import (
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/storepulse/internal/client/models"
)

const (
	TenantsPath = "/api/tenants"
	SyncPath    = "/api/sync"
)

func CustomersPath(tenantID string) string {
	return "/api/customers/tenant/" + url.PathEscape(tenantID)
}

func TotalOrdersPath(tenantID string) string {
	return ordersAnalytics(tenantID, "total-orders")
}

func TotalRevenuePath(tenantID string) string {
	return ordersAnalytics(tenantID, "total-revenue")
}

func OrdersTrendPath(tenantID string) string {
	return ordersAnalytics(tenantID, "orders-trend")
}

func TopCustomersPath(tenantID string, limit int) string {
	return fmt.Sprintf("%s?limit=%d", ordersAnalytics(tenantID, "top-customers"), limit)
}

func ProductsPath(tenantID string) string {
	return "/api/products/tenant/" + url.PathEscape(tenantID)
}

func DashboardPath(tenantID string, r models.DateRange) string {
	q := url.Values{}
	q.Set("from", r.FromString())
	q.Set("to", r.ToString())
	return "/api/tenant/" + url.PathEscape(tenantID) + "/dashboard?" + q.Encode()
}

func ordersAnalytics(tenantID, metric string) string {
	return "/api/orders/" + url.PathEscape(tenantID) + "/analytics/" + metric
}
