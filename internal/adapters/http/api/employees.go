// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/roster/pkg/logger"
)

// EmployeeHandler serves the session's employee list and details.
type EmployeeHandler struct {
	deps   EmployeeDependencies
	logger logger.Logger
}

// NewEmployeeHandler creates a new employee handler.
func NewEmployeeHandler(deps EmployeeDependencies, l logger.Logger) *EmployeeHandler {
	return &EmployeeHandler{deps: deps, logger: l}
}

// HandleList handles GET /employees requests.
func (h *EmployeeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.deps.Employees(r.Context(), TokenFromContext(r.Context()))
	if err != nil {
		fail(r.Context(), w, h.logger, "api.employees", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleGet handles GET /employees/{id} requests.
func (h *EmployeeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	d, err := h.deps.Employee(r.Context(), TokenFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		fail(r.Context(), w, h.logger, "api.employee", err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
