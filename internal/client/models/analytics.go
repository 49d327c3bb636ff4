// Package models holds the backend payloads the console decodes.
package models

// Customer is one row of GET /api/customers/tenant/{tenantId}.
type Customer struct {
	ID          ID      `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	TotalSpent  float64 `json:"totalSpent"`
	OrdersCount int     `json:"ordersCount"`
}

// Total is the body of the total-orders and total-revenue endpoints.
type Total struct {
	Total float64 `json:"total"`
}

// TrendPoint is one day of GET /api/orders/{tenantId}/analytics/orders-trend.
type TrendPoint struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// TopCustomer is a ranked customer. The backend has shipped several
// spellings of the same fields; the accessors pick whichever is set.
type TopCustomer struct {
	CustomerID   ID      `json:"customerId"`
	ID           ID      `json:"id"`
	Name         string  `json:"name"`
	CustomerName string  `json:"customerName"`
	Email        string  `json:"email"`
	TotalSpent   float64 `json:"totalSpent"`
	Revenue      float64 `json:"revenue"`
	OrdersCount  int     `json:"ordersCount"`
	TotalOrders  int     `json:"totalOrders"`
	Orders       int     `json:"orders"`
}

func (c TopCustomer) Key() ID {
	if c.CustomerID != "" {
		return c.CustomerID
	}
	return c.ID
}

func (c TopCustomer) DisplayName() string {
	switch {
	case c.Name != "":
		return c.Name
	case c.CustomerName != "":
		return c.CustomerName
	default:
		return "Unknown Customer"
	}
}

func (c TopCustomer) Spent() float64 {
	if c.TotalSpent != 0 {
		return c.TotalSpent
	}
	return c.Revenue
}

func (c TopCustomer) OrderCount() int {
	switch {
	case c.OrdersCount != 0:
		return c.OrdersCount
	case c.TotalOrders != 0:
		return c.TotalOrders
	default:
		return c.Orders
	}
}

// Product is one row of GET /api/products/tenant/{tenantId}.
type Product struct {
	ID           ID      `json:"id"`
	Name         string  `json:"name"`
	ProductName  string  `json:"productName"`
	SKU          string  `json:"sku"`
	Image        string  `json:"image"`
	Sales        int     `json:"sales"`
	TotalSales   int     `json:"totalSales"`
	Revenue      float64 `json:"revenue"`
	TotalRevenue float64 `json:"totalRevenue"`
}

func (p Product) DisplayName() string {
	switch {
	case p.Name != "":
		return p.Name
	case p.ProductName != "":
		return p.ProductName
	default:
		return "Unknown Product"
	}
}

func (p Product) SoldUnits() int {
	if p.Sales != 0 {
		return p.Sales
	}
	return p.TotalSales
}

func (p Product) Earned() float64 {
	if p.Revenue != 0 {
		return p.Revenue
	}
	return p.TotalRevenue
}
