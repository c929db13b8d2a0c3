// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/cors"
	"github.com/okian/roster/internal/domain/types"
	"github.com/okian/roster/pkg/logger"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	SessionDependencies
	EmployeeDependencies
	ViewDependencies
	PhotoDependencies
}

// SessionDependencies covers login, logout and token checks.
type SessionDependencies interface {
	Login(ctx context.Context, username, password string) (types.LoginResponse, error)
	Logout(ctx context.Context, token string)
	Authorize(ctx context.Context, token string) error
}

// EmployeeDependencies exposes the session's employee list.
type EmployeeDependencies interface {
	Employees(ctx context.Context, token string) ([]types.EmployeeSummary, error)
	Employee(ctx context.Context, token, id string) (types.EmployeeDetails, error)
}

// ViewDependencies builds the derived salary and city map views.
type ViewDependencies interface {
	SalaryChart(ctx context.Context, token, chartType string) (types.SalaryChart, error)
	CityMap(ctx context.Context, token string) (types.CityMap, error)
	CityMapGeoJSON(ctx context.Context, token string) (*geojson.FeatureCollection, error)
}

// PhotoDependencies stores and serves captured photos.
type PhotoDependencies interface {
	CapturePhoto(ctx context.Context, token, id string, payload []byte) (types.PhotoInfo, error)
	Photo(ctx context.Context, token, id string) (types.PhotoFile, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	deps Dependencies

	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	sessionHandler  *SessionHandler
	employeeHandler *EmployeeHandler
	viewHandler     *ViewHandler
	photoHandler    *PhotoHandler

	allowedOrigins []string
	maxPhotoBytes  int64
	logger         logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithAllowedOrigins sets the CORS origins accepted from browsers.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.allowedOrigins = origins
		}
	}
}

// WithMaxPhotoBytes caps the request body of a photo upload.
func WithMaxPhotoBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxPhotoBytes = n
		}
	}
}

// WithLogger sets the logger used for server-side failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		deps:           deps,
		allowedOrigins: []string{"*"},
		maxPhotoBytes:  5 << 20,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("api")
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.sessionHandler = NewSessionHandler(deps, s.logger)
	s.employeeHandler = NewEmployeeHandler(deps, s.logger)
	s.viewHandler = NewViewHandler(deps, s.logger)
	s.photoHandler = NewPhotoHandler(deps, s.maxPhotoBytes, s.logger)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	authed := func(h http.HandlerFunc) http.HandlerFunc { return RequireSession(s.deps, h) }

	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("POST /login", MetricsMiddleware(s.sessionHandler.HandleLogin, "login"))
	mux.HandleFunc("POST /logout", MetricsMiddleware(authed(s.sessionHandler.HandleLogout), "logout"))

	mux.HandleFunc("GET /employees", MetricsMiddleware(authed(s.employeeHandler.HandleList), "employees"))
	mux.HandleFunc("GET /employees/{id}", MetricsMiddleware(authed(s.employeeHandler.HandleGet), "employee"))
	mux.HandleFunc("POST /employees/{id}/photo", MetricsMiddleware(authed(s.photoHandler.HandleCapture), "photo_capture"))
	mux.HandleFunc("GET /employees/{id}/photo", MetricsMiddleware(authed(s.photoHandler.HandleDownload), "photo_download"))

	mux.HandleFunc("GET /charts/salary", MetricsMiddleware(authed(s.viewHandler.HandleSalaryChart), "salary_chart"))
	mux.HandleFunc("GET /map", MetricsMiddleware(authed(s.viewHandler.HandleCityMap), "city_map"))
	mux.HandleFunc("GET /map.geojson", MetricsMiddleware(authed(s.viewHandler.HandleCityMapGeoJSON), "city_map_geojson"))
}

// Handler wraps mux with CORS for browser clients.
func (s *Server) Handler(mux *http.ServeMux) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	})(mux)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	writeTyped(w, status, "application/json; charset=utf-8", v)
}

func writeTyped(w http.ResponseWriter, status int, contentType string, v any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = message(err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// fail writes err with the status its kind maps to. Server errors are logged.
func fail(ctx context.Context, w http.ResponseWriter, l logger.Logger, op string, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		l.Error(ctx, "request failed", logger.String("op", op), logger.Error(err))
	}
	writeError(w, status, code, err)
}
