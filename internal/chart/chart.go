// Package chart reshapes dashboard records into the series the charting
// components plot. Every function is pure.
package chart

import (
	"math"

	"dashboard/internal/model"
)

type NameValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// NameValues maps records to pie slices.
func NameValues[T any](records []T, name func(T) string, value func(T) float64) []NameValue {
	out := make([]NameValue, 0, len(records))
	for _, r := range records {
		out = append(out, NameValue{Name: name(r), Value: value(r)})
	}
	return out
}

func Categories(cs []model.Category) []NameValue {
	return NameValues(cs,
		func(c model.Category) string { return c.Name },
		func(c model.Category) float64 { return c.Value })
}

func OrderStatus(statuses []model.OrderStatus) []NameValue {
	return NameValues(statuses,
		func(o model.OrderStatus) string { return o.Name },
		func(o model.OrderStatus) float64 { return o.Value })
}

func SalesByCategory(ss []model.SalesByCategory) []NameValue {
	return NameValues(ss,
		func(s model.SalesByCategory) string { return s.Name },
		func(s model.SalesByCategory) float64 { return s.Value })
}

type TrendPoint struct {
	Name  string  `json:"name"`
	Sales float64 `json:"sales"`
}

// SalesTrend is the line chart of the sales overview.
func SalesTrend(sales []model.Sale) []TrendPoint {
	out := make([]TrendPoint, 0, len(sales))
	for _, s := range sales {
		out = append(out, TrendPoint{Name: s.Name, Sales: s.Sales})
	}
	return out
}

// BarGroup is one category on a multi-series bar chart.
type BarGroup struct {
	Name   string             `json:"name"`
	Values map[string]float64 `json:"values"`
}

// Series names one numeric field plotted as a bar.
type Series[T any] struct {
	Key   string
	Value func(T) float64
}

func Bars[T any](records []T, name func(T) string, series ...Series[T]) []BarGroup {
	out := make([]BarGroup, 0, len(records))
	for _, r := range records {
		g := BarGroup{Name: name(r), Values: make(map[string]float64, len(series))}
		for _, s := range series {
			g.Values[s.Key] = s.Value(r)
		}
		out = append(out, g)
	}
	return out
}

// Performance plots retention, revenue and profit per product group.
func Performance(ps []model.ProductPerformance) []BarGroup {
	return Bars(ps,
		func(p model.ProductPerformance) string { return p.Name },
		Series[model.ProductPerformance]{Key: "Retention", Value: func(p model.ProductPerformance) float64 { return p.Retention }},
		Series[model.ProductPerformance]{Key: "Revenue", Value: func(p model.ProductPerformance) float64 { return p.Revenue }},
		Series[model.ProductPerformance]{Key: "Profit", Value: func(p model.ProductPerformance) float64 { return p.Profit }},
	)
}

type ProfitLoss struct {
	Date   string  `json:"date"`
	Profit float64 `json:"profit"`
	Loss   float64 `json:"loss"`
}

// ProfitLossByDate groups sales records by date in first-seen order.
// Non-negative profits add to Profit, negative ones add their magnitude to
// Loss.
func ProfitLossByDate(records []model.SaleRecord) []ProfitLoss {
	index := make(map[string]int)
	out := make([]ProfitLoss, 0)
	for _, r := range records {
		i, ok := index[r.Date]
		if !ok {
			i = len(out)
			index[r.Date] = i
			out = append(out, ProfitLoss{Date: r.Date})
		}
		if r.Profit >= 0 {
			out[i].Profit += r.Profit
		} else {
			out[i].Loss += math.Abs(r.Profit)
		}
	}
	return out
}

// CountBy counts records per key in first-seen order.
func CountBy[T any](records []T, key func(T) string) []NameValue {
	index := make(map[string]int)
	out := make([]NameValue, 0)
	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, NameValue{Name: k})
		}
		out[i].Value++
	}
	return out
}
