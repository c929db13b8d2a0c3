// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/roster/pkg/logger"
)

const geoJSONContentType = "application/geo+json"

// ViewHandler serves the derived salary and city map views.
type ViewHandler struct {
	deps   ViewDependencies
	logger logger.Logger
}

// NewViewHandler creates a new view handler.
func NewViewHandler(deps ViewDependencies, l logger.Logger) *ViewHandler {
	return &ViewHandler{deps: deps, logger: l}
}

// HandleSalaryChart handles GET /charts/salary?type=bar|line requests.
func (h *ViewHandler) HandleSalaryChart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.deps.SalaryChart(r.Context(), TokenFromContext(r.Context()), r.URL.Query().Get("type"))
	if err != nil {
		fail(r.Context(), w, h.logger, "api.salary_chart", err)
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

// HandleCityMap handles GET /map requests.
func (h *ViewHandler) HandleCityMap(w http.ResponseWriter, r *http.Request) {
	view, err := h.deps.CityMap(r.Context(), TokenFromContext(r.Context()))
	if err != nil {
		fail(r.Context(), w, h.logger, "api.city_map", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleCityMapGeoJSON handles GET /map.geojson requests.
func (h *ViewHandler) HandleCityMapGeoJSON(w http.ResponseWriter, r *http.Request) {
	fc, err := h.deps.CityMapGeoJSON(r.Context(), TokenFromContext(r.Context()))
	if err != nil {
		fail(r.Context(), w, h.logger, "api.city_map_geojson", err)
		return
	}
	writeTyped(w, http.StatusOK, geoJSONContentType, fc)
}
