package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/OPMDOR/system-access-form/modules/requests/services"
	"github.com/OPMDOR/system-access-form/pkg/export"
)

// ExportController exposes the export engine over HTTP.
type ExportController struct {
	exports *services.ExportService
}

func NewExportController(exports *services.ExportService) *ExportController {
	return &ExportController{exports: exports}
}

func (c *ExportController) Register(r *mux.Router) {
	r.HandleFunc("/requests/export", c.Export).Methods(http.MethodGet)
	r.HandleFunc("/requests/export/formats", c.Formats).Methods(http.MethodGet)
}

// Export renders the filtered snapshot in the requested format and streams
// the payload back as an attachment.
func (c *ExportController) Export(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFromRequest(r)

	format := strings.TrimSpace(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatJSON
	}

	opts, err := parseExportOptions(r)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, requestID, "EXPORT_INVALID_QUERY", err.Error())
		return
	}

	result, err := c.exports.Export(r.Context(), format, opts)
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}

	w.Header().Set("Content-Type", result.MediaType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(result.Size))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Content)
}

func (c *ExportController) Formats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"formats": c.exports.Formats()})
}

func parseExportOptions(r *http.Request) (export.Options, error) {
	q := r.URL.Query()
	opts := export.Options{
		Sheet: strings.TrimSpace(q.Get("sheet")),
		Mode:  strings.TrimSpace(q.Get("mode")),
	}
	opts.Criteria.Status = strings.TrimSpace(q.Get("status"))
	opts.Criteria.Requester = strings.TrimSpace(q.Get("requester"))
	opts.Criteria.WorkflowID = strings.TrimSpace(q.Get("workflow_id"))
	opts.Criteria.SortBy = strings.TrimSpace(q.Get("sort_by"))

	if order := strings.TrimSpace(q.Get("sort_order")); order != "" {
		if order != export.SortAsc && order != export.SortDesc {
			return opts, fmt.Errorf("sort_order must be asc or desc")
		}
		opts.Criteria.SortOrder = order
	}

	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return opts, fmt.Errorf("limit is invalid")
		}
		opts.Criteria.Limit = n
	}

	from, err := parseOptionalTime(q.Get("from"))
	if err != nil {
		return opts, fmt.Errorf("from is invalid")
	}
	to, err := parseOptionalTime(q.Get("to"))
	if err != nil {
		return opts, fmt.Errorf("to is invalid")
	}
	if from != nil || to != nil {
		dr := &export.DateRange{}
		if from != nil {
			dr.Start = *from
		}
		if to != nil {
			dr.End = *to
		} else {
			dr.End = time.Now().UTC()
		}
		opts.Criteria.DateRange = dr
	}

	return opts, nil
}

func parseOptionalTime(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func requestIDFromRequest(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get("X-Request-ID")); id != "" {
		return id
	}
	return uuid.NewString()
}

type apiError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Meta    map[string]string `json:"meta"`
}

func writeServiceError(w http.ResponseWriter, requestID string, err error) {
	var svcErr *services.ServiceError
	if errors.As(err, &svcErr) {
		writeAPIError(w, svcErr.Status, requestID, svcErr.Code, svcErr.Message)
		return
	}
	writeAPIError(w, http.StatusInternalServerError, requestID, "EXPORT_INTERNAL", err.Error())
}

func writeAPIError(w http.ResponseWriter, status int, requestID, code, message string) {
	meta := map[string]string{}
	if requestID != "" {
		meta["request_id"] = requestID
	}
	writeJSON(w, status, apiError{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

func writeJSON[T any](w http.ResponseWriter, status int, payload T) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
