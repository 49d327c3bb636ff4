package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/storepulse/internal/common"
)

func TestID_AcceptsStringAndNumber(t *testing.T) {
	var rows []struct {
		ID ID `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(`[{"id":"c-1"},{"id":42},{"id":null}]`), &rows))

	assert.Equal(t, ID("c-1"), rows[0].ID)
	assert.Equal(t, ID("42"), rows[1].ID)
	assert.Equal(t, ID(""), rows[2].ID)
}

func TestTopCustomer_Fallbacks(t *testing.T) {
	var c TopCustomer
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"customerName":"Ann","revenue":12.5,"orders":3}`), &c))

	assert.Equal(t, ID("7"), c.Key())
	assert.Equal(t, "Ann", c.DisplayName())
	assert.Equal(t, 12.5, c.Spent())
	assert.Equal(t, 3, c.OrderCount())

	assert.Equal(t, "Unknown Customer", TopCustomer{}.DisplayName())
}

func TestProduct_Fallbacks(t *testing.T) {
	p := Product{ProductName: "Mug", TotalSales: 9, TotalRevenue: 90}
	assert.Equal(t, "Mug", p.DisplayName())
	assert.Equal(t, 9, p.SoldUnits())
	assert.Equal(t, 90.0, p.Earned())
	assert.Equal(t, "Unknown Product", Product{}.DisplayName())
}

func TestDashboardSummary_SeriesMergesAndSorts(t *testing.T) {
	d := DashboardSummary{
		RevenueTrend: map[string]float64{"2024-01-02": 20, "2024-01-01": 10},
		OrdersByDay:  map[string]int{"2024-01-01": 1, "2024-01-03": 4},
	}

	got := d.Series()
	want := []TrendPoint{
		{Date: "2024-01-01", Orders: 1, Revenue: 10},
		{Date: "2024-01-02", Revenue: 20},
		{Date: "2024-01-03", Orders: 4},
	}
	assert.Equal(t, want, got)
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", r.FromString())
	assert.Equal(t, "2024-03-31", r.ToString())

	_, err = ParseDateRange("2024-03-31", "2024-03-01")
	assert.True(t, errors.Is(err, common.ErrInvalidDateRange))

	_, err = ParseDateRange("yesterday", "2024-03-01")
	assert.True(t, errors.Is(err, common.ErrInvalidDateRange))
}

func TestLastWindow(t *testing.T) {
	now := time.Date(2024, 5, 31, 15, 0, 0, 0, time.UTC)
	r := LastWindow(now, 30*24*time.Hour)
	assert.Equal(t, "2024-05-01", r.FromString())
	assert.Equal(t, "2024-05-31", r.ToString())
}

func TestTenant_Key(t *testing.T) {
	assert.Equal(t, "shop-1", Tenant{ID: "9", TenantID: "shop-1"}.Key())
	assert.Equal(t, "9", Tenant{ID: "9"}.Key())
}
