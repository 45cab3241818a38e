package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dashboard/internal/chart"
	"dashboard/internal/model"
)

// DocumentLoader returns the current dashboard document.
type DocumentLoader interface {
	Load(ctx context.Context) (*model.Document, error)
}

type yearlyResponse struct {
	Available bool `json:"available"`
	chart.Yearly
}

// chartBuilders derive each named chart from the document.
var chartBuilders = map[string]func(*model.Document) any{
	"sales":               func(d *model.Document) any { return chart.SalesTrend(d.Sales) },
	"categories":          func(d *model.Document) any { return chart.Categories(d.Categories) },
	"order-status":        func(d *model.Document) any { return chart.OrderStatus(d.OrderStatus) },
	"sales-by-category":   func(d *model.Document) any { return chart.SalesByCategory(d.SalesByCategory) },
	"product-performance": func(d *model.Document) any { return chart.Performance(d.ProductPerformance) },
	"profit-loss":         func(d *model.Document) any { return chart.ProfitLossByDate(d.SalesRecords) },
	"sales-summary":       func(d *model.Document) any { return chart.SalesSummary(d.SalesRecords) },
	"yearly": func(d *model.Document) any {
		y, ok := chart.YearlyComparison(d.YearlySales)
		if !ok {
			y = chart.Yearly{Revenue: []chart.NameValue{}, Profit: []chart.NameValue{}}
		}
		return yearlyResponse{Available: ok, Yearly: y}
	},
}

func DashboardHandler(loader DocumentLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := loader.Load(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

func SidebarHandler(loader DocumentLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := loader.Load(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, doc.SidebarItems)
	}
}

func OverviewStatsHandler(loader DocumentLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := loader.Load(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, doc.OrderStats)
	}
}

func ChartHandler(loader DocumentLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		build, ok := chartBuilders[chi.URLParam(r, "chart")]
		if !ok {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown chart"})
			return
		}

		doc, err := loader.Load(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, build(doc))
	}
}
