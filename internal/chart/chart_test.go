package chart

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard/internal/model"
)

func TestProfitLossByDate(t *testing.T) {
	got := ProfitLossByDate([]model.SaleRecord{
		{Date: "d1", Profit: 10},
		{Date: "d1", Profit: -3},
	})
	assert.Equal(t, []ProfitLoss{{Date: "d1", Profit: 10, Loss: 3}}, got)
}

func TestProfitLossByDate_KeepsFirstSeenOrder(t *testing.T) {
	got := ProfitLossByDate([]model.SaleRecord{
		{Date: "1403/02/01", Profit: 5},
		{Date: "1403/01/01", Profit: -2},
		{Date: "1403/02/01", Profit: 0},
		{Date: "1403/01/01", Profit: -4},
	})

	want := []ProfitLoss{
		{Date: "1403/02/01", Profit: 5},
		{Date: "1403/01/01", Loss: 6},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ProfitLossByDate mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, ProfitLossByDate(nil))
}

func TestPerformance(t *testing.T) {
	got := Performance([]model.ProductPerformance{
		{Name: "A", Retention: 1, Revenue: 2, Profit: 3},
	})

	want := []BarGroup{{Name: "A", Values: map[string]float64{"Retention": 1, "Revenue": 2, "Profit": 3}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Performance mismatch (-want +got):\n%s", diff)
	}
}

func TestNameValueAdapters(t *testing.T) {
	assert.Equal(t, []NameValue{{Name: "خانه", Value: 30}},
		Categories([]model.Category{{Name: "خانه", Value: 30}}))
	assert.Equal(t, []NameValue{{Name: "x", Value: 2}},
		OrderStatus([]model.OrderStatus{{Name: "x", Value: 2}}))
	assert.Equal(t, []NameValue{{Name: "y", Value: 7}},
		SalesByCategory([]model.SalesByCategory{{Name: "y", Value: 7}}))
	assert.Equal(t, []TrendPoint{{Name: "فروردین", Sales: 4200}},
		SalesTrend([]model.Sale{{Name: "فروردین", Sales: 4200}}))
}

func TestCountBy(t *testing.T) {
	orders := []model.Order{
		{Status: model.StatusPending},
		{Status: model.StatusCanceled},
		{Status: model.StatusPending},
	}

	got := CountBy(orders, func(o model.Order) string { return o.Status })

	assert.Equal(t, []NameValue{
		{Name: model.StatusPending, Value: 2},
		{Name: model.StatusCanceled, Value: 1},
	}, got)
}

func TestSalesSummary(t *testing.T) {
	got := SalesSummary([]model.SaleRecord{
		{Amount: 100, Profit: 20, Status: model.SaleSucceeded},
		{Amount: 50, Profit: -15, Status: model.SaleCanceled},
		{Amount: 70, Profit: 5, Status: "در انتظار"},
	})

	assert.Equal(t, Summary{Count: 3, Revenue: 100, Profit: 10, Loss: 15}, got)
}

func TestYearlyComparison(t *testing.T) {
	_, ok := YearlyComparison([]model.YearlySales{{Year: "1402"}})
	assert.False(t, ok)

	y, ok := YearlyComparison([]model.YearlySales{
		{Year: "1401", Revenue: 50, Profit: 0},
		{Year: "1402", Revenue: 200, Profit: 20},
		{Year: "1403", Revenue: 250, Profit: 15},
	})
	require.True(t, ok)

	assert.Len(t, y.Revenue, 3)
	assert.Equal(t, NameValue{Name: "1403", Value: 15}, y.Profit[2])
	require.NotNil(t, y.RevenueGrowth)
	assert.Equal(t, 25.0, *y.RevenueGrowth)
	require.NotNil(t, y.ProfitGrowth)
	assert.Equal(t, -25.0, *y.ProfitGrowth)

	y, ok = YearlyComparison([]model.YearlySales{{Year: "a", Profit: 0}, {Year: "b", Profit: 3}})
	require.True(t, ok)
	assert.Nil(t, y.ProfitGrowth)
}
