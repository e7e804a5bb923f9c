package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "github.com/cavalcanteprofissional/mittu-dashboard/internal/errors"
	"github.com/cavalcanteprofissional/mittu-dashboard/internal/exporter"
	"github.com/cavalcanteprofissional/mittu-dashboard/internal/services"
)

// DashboardHandler serves the dashboard data products as JSON.
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	csv          *exporter.CSVWriter
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
		csv:          exporter.NewCSVWriter(),
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetSnapshot)
	r.Get("/kpis", h.GetKPIs)
	r.Get("/status", h.GetStatusDistribution)
	r.Get("/departments", h.GetDepartments)
	r.Get("/cost-comparison", h.GetCostComparison)
	r.Get("/schedule", h.GetSchedule)
	r.Post("/reload", h.Reload)

	// CSV downloads of the two tabular products
	r.Get("/departments/export", h.ExportDepartments)
	r.Get("/cost-comparison/export", h.ExportCostComparison)

	return r
}

// GetSnapshot handles GET /api/dashboard
func (h *DashboardHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.Snapshot(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, snapshot)
}

// GetKPIs handles GET /api/dashboard/kpis
func (h *DashboardHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	kpis, cards, err := h.service.KPIs(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"kpis":  kpis,
		"cards": cards,
	})
}

// GetStatusDistribution handles GET /api/dashboard/status
func (h *DashboardHandler) GetStatusDistribution(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.service.StatusDistribution(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"statuses": statuses})
}

// GetDepartments handles GET /api/dashboard/departments
func (h *DashboardHandler) GetDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.service.DepartmentAnalysis(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"departments": departments})
}

// GetCostComparison handles GET /api/dashboard/cost-comparison
func (h *DashboardHandler) GetCostComparison(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.CostComparison(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"projects": projects})
}

// GetSchedule handles GET /api/dashboard/schedule
func (h *DashboardHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.service.ScheduleHealth(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, schedule)
}

// Reload handles POST /api/dashboard/reload: it invalidates the cached
// table and serves a freshly computed snapshot.
func (h *DashboardHandler) Reload(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "reload requested",
		slog.String("remote_addr", r.RemoteAddr))

	snapshot, err := h.service.Reload(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, snapshot)
}

// ExportDepartments handles GET /api/dashboard/departments/export
func (h *DashboardHandler) ExportDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.service.DepartmentAnalysis(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="departments.csv"`)
	if err := h.csv.WriteDepartments(w, departments); err != nil {
		h.logger.ErrorContext(r.Context(), "csv export failed",
			slog.String("export", "departments"),
			slog.String("error", err.Error()))
	}
}

// ExportCostComparison handles GET /api/dashboard/cost-comparison/export
func (h *DashboardHandler) ExportCostComparison(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.CostComparison(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="cost_comparison.csv"`)
	if err := h.csv.WriteCostComparison(w, projects); err != nil {
		h.logger.ErrorContext(r.Context(), "csv export failed",
			slog.String("export", "cost_comparison"),
			slog.String("error", err.Error()))
	}
}

// handleServiceError maps service errors to API errors. An unreadable
// source is the one user-visible failure: the dashboard surfaces it and
// renders nothing further.
func (h *DashboardHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrSourceUnavailable) {
		h.errorHandler.HandleError(w, r, apierrors.SourceUnavailableError(err))
		return
	}
	h.errorHandler.HandleError(w, r, err)
}
