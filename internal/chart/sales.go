package chart

import (
	"math"

	"dashboard/internal/model"
)

type Summary struct {
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
	Loss    float64 `json:"loss"`
}

// SalesSummary computes the sales page cards: the record count, revenue of
// successful sales, total profit and the loss caused by cancellations.
func SalesSummary(records []model.SaleRecord) Summary {
	s := Summary{Count: len(records)}
	for _, r := range records {
		if r.Status == model.SaleSucceeded {
			s.Revenue += r.Amount
		}
		s.Profit += r.Profit
		if r.Status == model.SaleCanceled {
			s.Loss += math.Abs(r.Profit)
		}
	}
	return s
}

type Yearly struct {
	Revenue       []NameValue `json:"revenue"`
	Profit        []NameValue `json:"profit"`
	RevenueGrowth *float64    `json:"revenueGrowth"`
	ProfitGrowth  *float64    `json:"profitGrowth"`
}

// YearlyComparison builds the revenue and profit donuts and the growth of the
// last year over the one before it. ok is false with fewer than two years.
func YearlyComparison(years []model.YearlySales) (y Yearly, ok bool) {
	if len(years) < 2 {
		return Yearly{}, false
	}
	y.Revenue = NameValues(years,
		func(s model.YearlySales) string { return string(s.Year) },
		func(s model.YearlySales) float64 { return s.Revenue })
	y.Profit = NameValues(years,
		func(s model.YearlySales) string { return string(s.Year) },
		func(s model.YearlySales) float64 { return s.Profit })

	this, last := years[len(years)-1], years[len(years)-2]
	y.RevenueGrowth = growth(this.Revenue, last.Revenue)
	y.ProfitGrowth = growth(this.Profit, last.Profit)
	return y, true
}

// growth is the percentage change rounded to one decimal; nil when the base
// is zero.
func growth(now, before float64) *float64 {
	if before == 0 {
		return nil
	}
	g := math.Round((now-before)/before*1000) / 10
	return &g
}
