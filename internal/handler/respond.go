package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"dashboard/internal/errx"
	"dashboard/internal/service"
	"dashboard/internal/session"
	"dashboard/internal/table"
	logx "dashboard/pkg/logger"
)

// StatusClientClosedRequest answers requests whose client went away before
// the response was ready.
const StatusClientClosedRequest = 499

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Error().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	ae := errx.As(classify(err))
	if ae.Status >= http.StatusInternalServerError {
		logx.Error().Err(ae).Int("status", ae.Status).Msg("request failed")
	}
	writeJSON(w, ae.Status, errorResponse{Error: ae.Message, Fields: ae.Fields})
}

// classify maps the sentinel errors of the lower layers to HTTP errors.
func classify(err error) error {
	var ae *errx.AppError
	if errors.As(err, &ae) {
		return ae
	}

	switch {
	case errors.Is(err, context.Canceled):
		return errx.New(err, StatusClientClosedRequest, "request canceled")
	case errors.Is(err, service.ErrFetchFailed):
		return errx.New(err, http.StatusBadGateway, service.ErrFetchFailed.Error())
	case errors.Is(err, service.ErrNotMounted),
		errors.Is(err, service.ErrStaleMount),
		errors.Is(err, table.ErrPageOutOfRange):
		return errx.New(err, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		return errx.New(err, http.StatusConflict, service.ErrEmailTaken.Error())
	case errors.Is(err, table.ErrUnknownField),
		errors.Is(err, table.ErrUnsupportedFacet):
		return errx.New(err, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return errx.New(err, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
	case errors.Is(err, session.ErrNotFound):
		return errx.New(err, http.StatusUnauthorized, "session expired")
	case errors.Is(err, context.DeadlineExceeded):
		return errx.New(err, http.StatusGatewayTimeout, "request timed out")
	}
	return err
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		return errx.New(err, http.StatusBadRequest, "invalid json")
	}
	return nil
}

func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	}
}

func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	}
}

func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
