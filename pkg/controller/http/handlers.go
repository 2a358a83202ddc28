package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/candlelight-lab/quarterdeck/pkg/domain/interfaces"
	"github.com/candlelight-lab/quarterdeck/pkg/domain/model"
	"github.com/candlelight-lab/quarterdeck/pkg/domain/types"
)

// Default chart dimensions when the client does not ask for specific ones
const (
	defaultChartWidth  = 800.0
	defaultChartHeight = 400.0
)

// DashboardHandler handles dataset, dashboard, and drill-down endpoints
type DashboardHandler struct {
	dashboardUC interfaces.Dashboard
	drillUC     interfaces.DrillDown
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardUC interfaces.Dashboard, drillUC interfaces.DrillDown) *DashboardHandler {
	return &DashboardHandler{
		dashboardUC: dashboardUC,
		drillUC:     drillUC,
	}
}

// kindFromRequest parses the {kind} URL parameter
func kindFromRequest(r *http.Request) (types.DatasetKind, error) {
	slug := chi.URLParam(r, "kind")
	kind, ok := types.ParseDatasetKind(slug)
	if !ok {
		return "", goerr.Wrap(model.ErrUnknownDatasetKind, "unsupported dataset",
			goerr.V("kind", slug))
	}
	return kind, nil
}

// dimsFromRequest parses optional width/height query parameters
func dimsFromRequest(r *http.Request) model.ChartDims {
	dims := model.ChartDims{Width: defaultChartWidth, Height: defaultChartHeight}
	if w, err := strconv.ParseFloat(r.URL.Query().Get("width"), 64); err == nil && w > 0 {
		dims.Width = w
	}
	if h, err := strconv.ParseFloat(r.URL.Query().Get("height"), 64); err == nil && h > 0 {
		dims.Height = h
	}
	return dims
}

// HandleRawData serves the raw rows of one dataset kind
func (h *DashboardHandler) HandleRawData(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFromRequest(r)
	if err != nil {
		writeError(w, err, http.StatusNotFound)
		return
	}

	rows, err := h.dashboardUC.RawRows(r.Context(), kind)
	if err != nil {
		writeError(w, err, http.StatusBadGateway)
		return
	}
	if rows == nil {
		rows = []model.RawRow{}
	}

	writeJSON(r.Context(), w, http.StatusOK, rows)
}

// HandleDashboardView serves the current dashboard view for a kind
func (h *DashboardHandler) HandleDashboardView(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFromRequest(r)
	if err != nil {
		writeError(w, err, http.StatusNotFound)
		return
	}

	view, err := h.dashboardUC.View(r.Context(), kind, dimsFromRequest(r))
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, view)
}

// HandleDashboardLoad triggers a (re)load of a dataset kind
func (h *DashboardHandler) HandleDashboardLoad(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFromRequest(r)
	if err != nil {
		writeError(w, err, http.StatusNotFound)
		return
	}

	if err := h.dashboardUC.Load(r.Context(), kind); err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(r.Context(), w, http.StatusAccepted, map[string]string{
		"kind":  kind.String(),
		"state": types.StateLoading.String(),
	})
}

// HandleDrillDownGet serves the current drill-down view
func (h *DashboardHandler) HandleDrillDownGet(w http.ResponseWriter, r *http.Request) {
	view := h.drillUC.Current(r.Context())
	if view == nil {
		writeJSON(r.Context(), w, http.StatusOK, map[string]string{"state": "closed"})
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, view)
}

// HandleDrillDownSelect opens the drill-down for a category
func (h *DashboardHandler) HandleDrillDownSelect(w http.ResponseWriter, r *http.Request) {
	var selection model.DrillDownSelection
	if err := json.NewDecoder(r.Body).Decode(&selection); err != nil {
		writeError(w, goerr.Wrap(err, "invalid selection payload"), http.StatusBadRequest)
		return
	}

	if err := h.drillUC.Select(r.Context(), selection); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, h.drillUC.Current(r.Context()))
}

// HandleDrillDownDismiss closes the drill-down
func (h *DashboardHandler) HandleDrillDownDismiss(w http.ResponseWriter, r *http.Request) {
	h.drillUC.Dismiss(r.Context())
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"state": "closed"})
}

// writeJSON writes a JSON response
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.From(ctx).Error("Failed to encode response", "error", err)
	}
}

// writeError writes an error response
func writeError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")

	// Unknown-kind errors always map to not found regardless of caller hint
	if errors.Is(err, model.ErrUnknownDatasetKind) {
		status = http.StatusNotFound
	}
	w.WriteHeader(status)

	var message string
	if goErr := goerr.Unwrap(err); goErr != nil {
		message = goErr.Error()
	} else {
		message = err.Error()
	}

	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	}); err != nil {
		ctxlog.From(context.Background()).Error("Failed to encode error response", "error", err)
	}
}
