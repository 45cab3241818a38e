package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"

	"dashboard/internal/chart"
	"dashboard/internal/mw"
	"dashboard/internal/service"
	"dashboard/internal/table"
	logx "dashboard/pkg/logger"
)

type pageRequest struct {
	Page int `json:"page"`
}

type editRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

type editResponse[T any] struct {
	Applied bool `json:"applied"`
	Row     T    `json:"row"`
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}

// TableRoutes mounts the table endpoints for tbl on r.
func TableRoutes[T any](r chi.Router, spaces *service.WorkspaceService, tbl service.Table[T]) {
	r.Route("/api/tables/"+tbl.Name, func(r chi.Router) {
		r.Post("/mount", MountTableHandler(spaces, tbl))
		r.Get("/", GetTableHandler(spaces, tbl))
		r.Put("/query", SetQueryHandler(spaces, tbl))
		r.Put("/page", SetPageHandler(spaces, tbl))
		r.Patch("/rows/{id}", EditRowHandler(spaces, tbl))
		r.Delete("/rows/{id}", DeleteRowHandler(spaces, tbl))
		r.Post("/rows/{id}/edit", BeginEditHandler(spaces, tbl))
		r.Post("/rows/{id}/save", EndEditHandler(spaces, tbl))
		r.Get("/export.xlsx", ExportTableHandler(spaces, tbl))
		r.Get("/chart", TableChartHandler(spaces, tbl))
	})
}

func MountTableHandler[T any](spaces *service.WorkspaceService, tbl service.Table[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := service.Mount(r.Context(), spaces, mw.SessionID(r.Context()), tbl)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

func GetTableHandler[T any](spaces *service.WorkspaceService, tbl service.Table[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		withView(w, r, spaces, tbl, func(v *table.View[T]) (any, error) {
			return v.Snapshot(), nil
		})
	}
}

func SetQueryHandler[T any](spaces *service.WorkspaceService, tbl service.Table[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q table.Query
		if err := decodeJSON(r, &q); err != nil {
			writeError(w, err)
			return
		}
		withView(w, r, spaces, tbl, func(v *table.View[T]) (any, error) {
			if err := v.SetQuery(q); err != nil {
				return nil, err
			}
			return v.Snapshot(), nil
		})
	}
}

func SetPageHandler[T any](spaces *service.WorkspaceService, tbl service.Table[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pageRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		withView(w, r, spaces, tbl, func(v *table.View[T]) (any, error) {
			if err := v.SetPage(req.Page); err != nil {
				return nil, err
			}
			return v.Snapshot(), nil
		})
	}
}

func EditRowHandler[T any](spaces *service.WorkspaceService, tbl service.Table[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req editRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if err := validateStruct(req); err != nil {
			writeError(w, err)
			return
		}
		id := chi.URLParam(r, "id")
		withView(w, r, spaces, tbl, func(v *table.View[T]) (any, error) {
			row, applied, err := v.Edit(id, req.Field, req.Value)
			if err != nil {
				return nil, err
			}
			return editResponse[T]{Applied: applied, Row: row}, nil
		})
	}
}

func DeleteRowHandler[T any](spaces *service.WorkspaceService, tbl service.Table[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		withView(w, r, spaces, tbl, func(v *table.View[T]) (any, error) {
			return deleteResponse{Deleted: v.Delete(id)}, nil
		})
	}
}

func BeginEditHandler[T any](spaces *service.WorkspaceService, tbl service.Table[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		withView(w, r, spaces, tbl, func(v *table.View[T]) (any, error) {
			v.BeginEdit(id)
			return v.Snapshot(), nil
		})
	}
}

func EndEditHandler[T any](spaces *service.WorkspaceService, tbl service.Table[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		withView(w, r, spaces, tbl, func(v *table.View[T]) (any, error) {
			v.EndEdit()
			return v.Snapshot(), nil
		})
	}
}

func TableChartHandler[T any](spaces *service.WorkspaceService, tbl service.Table[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		withView(w, r, spaces, tbl, func(v *table.View[T]) (any, error) {
			return chart.CountBy(v.Records(), tbl.Breakdown), nil
		})
	}
}

func ExportTableHandler[T any](spaces *service.WorkspaceService, tbl service.Table[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rows []T
		err := service.With(spaces, mw.SessionID(r.Context()), tbl, func(v *table.View[T]) error {
			rows = v.Filtered()
			return nil
		})
		if err != nil {
			writeError(w, err)
			return
		}

		f, err := buildWorkbook(tbl, rows)
		if err != nil {
			writeError(w, err)
			return
		}
		defer func() {
			if err := f.Close(); err != nil {
				logx.Error().Err(err).Msg("close workbook")
			}
		}()

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", tbl.Name+".xlsx"))
		if err := f.Write(w); err != nil {
			logx.Error().Err(err).Str("table", tbl.Name).Msg("write workbook")
		}
	}
}

// buildWorkbook writes a header row and one row per record to a single sheet
// named after the table.
func buildWorkbook[T any](tbl service.Table[T], rows []T) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := tbl.Name
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(tbl.Columns))
	for i, c := range tbl.Columns {
		header[i] = c.Header
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, rec := range rows {
		values := make([]any, len(tbl.Columns))
		for j, c := range tbl.Columns {
			values[j] = c.Value(rec)
		}
		if err := f.SetSheetRow(sheet, "A"+strconv.Itoa(i+2), &values); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return f, nil
}

func withView[T any](w http.ResponseWriter, r *http.Request, spaces *service.WorkspaceService, tbl service.Table[T], fn func(v *table.View[T]) (any, error)) {
	var out any
	err := service.With(spaces, mw.SessionID(r.Context()), tbl, func(v *table.View[T]) error {
		var err error
		out, err = fn(v)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
