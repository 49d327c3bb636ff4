package models

// Tenant is one row of GET /api/tenants.
type Tenant struct {
	ID             ID     `json:"id"`
	TenantID       string `json:"tenantId"`
	ShopName       string `json:"shopName"`
	ShopifyBaseURL string `json:"shopifyBaseUrl"`
}

// SyncRequest is the body of POST /api/sync.
type SyncRequest struct {
	Email string `json:"email"`
}

// Key is the identifier used in tenant-scoped paths.
func (t Tenant) Key() string {
	if t.TenantID != "" {
		return t.TenantID
	}
	return string(t.ID)
}
