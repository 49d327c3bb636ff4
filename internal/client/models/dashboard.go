package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/storepulse/internal/common"
)

// DashboardSummary is the body of GET /api/tenant/{tenantId}/dashboard.
type DashboardSummary struct {
	TotalRevenue                float64            `json:"totalRevenue"`
	TotalRevenueChangePercent   float64            `json:"totalRevenueChangePercent"`
	TotalOrders                 int                `json:"totalOrders"`
	TotalOrdersChangePercent    float64            `json:"totalOrdersChangePercent"`
	TotalCustomers              int                `json:"totalCustomers"`
	TotalCustomersChangePercent float64            `json:"totalCustomersChangePercent"`
	TotalProducts               int                `json:"totalProducts"`
	RevenueTrend                map[string]float64 `json:"revenueTrend"`
	OrdersByDay                 map[string]int     `json:"ordersByDay"`
	TopCustomers                []TopCustomer      `json:"topCustomers"`
	TopProducts                 []TopProduct       `json:"topProducts"`
}

// TopProduct is a ranked product inside DashboardSummary.
type TopProduct struct {
	ProductID    ID      `json:"productId"`
	Title        string  `json:"title"`
	ImageSrc     string  `json:"imageSrc"`
	UnitPrice    float64 `json:"unitPrice"`
	QuantitySold int     `json:"quantitySold"`
	Revenue      float64 `json:"revenue"`
	Stock        int     `json:"stock"`
}

// Series flattens the day-keyed maps into one slice sorted by date.
func (d DashboardSummary) Series() []TrendPoint {
	days := make(map[string]*TrendPoint, len(d.RevenueTrend))
	point := func(day string) *TrendPoint {
		p, ok := days[day]
		if !ok {
			p = &TrendPoint{Date: day}
			days[day] = p
		}
		return p
	}
	for day, v := range d.RevenueTrend {
		point(day).Revenue = v
	}
	for day, v := range d.OrdersByDay {
		point(day).Orders = v
	}

	out := make([]TrendPoint, 0, len(days))
	for _, p := range days {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// DateLayout is the wire format of dashboard filter dates.
const DateLayout = "2006-01-02"

// DateRange is the inclusive from/to filter of the tenant dashboard.
type DateRange struct {
	From time.Time
	To   time.Time
}

// LastWindow returns the range ending today and starting window earlier.
func LastWindow(now time.Time, window time.Duration) DateRange {
	return DateRange{From: now.Add(-window), To: now}
}

// ParseDateRange parses two YYYY-MM-DD dates.
func ParseDateRange(from, to string) (DateRange, error) {
	f, err := time.Parse(DateLayout, from)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: from %q", common.ErrInvalidDateRange, from)
	}
	t, err := time.Parse(DateLayout, to)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: to %q", common.ErrInvalidDateRange, to)
	}
	if t.Before(f) {
		return DateRange{}, fmt.Errorf("%w: %s is after %s", common.ErrInvalidDateRange, from, to)
	}
	return DateRange{From: f, To: t}, nil
}

func (r DateRange) FromString() string { return r.From.Format(DateLayout) }
func (r DateRange) ToString() string   { return r.To.Format(DateLayout) }
