package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cavalcanteprofissional/mittu-dashboard/internal/analytics"
	"github.com/cavalcanteprofissional/mittu-dashboard/internal/dataset"
	"github.com/cavalcanteprofissional/mittu-dashboard/internal/format"
	"github.com/cavalcanteprofissional/mittu-dashboard/pkg/contracts/domain"
)

// DashboardService computes the dashboard data products from the
// configured project table. Loading goes through an injected Loader,
// normally a CachingLoader, so repeated snapshots of the same source do
// not re-parse the file.
type DashboardService struct {
	loader   dataset.Loader
	dataFile string
	logger   *slog.Logger
	now      func() time.Time
}

// NewDashboardService creates the service. A nil logger falls back to
// slog.Default.
func NewDashboardService(loader dataset.Loader, dataFile string, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		loader:   loader,
		dataFile: dataFile,
		logger:   logger.With(slog.String("component", "dashboard_service")),
		now:      time.Now,
	}
}

// load fetches the cleaned table, mapping loader failures to the service
// sentinel.
func (s *DashboardService) load(ctx context.Context) (*dataset.Table, error) {
	table, err := s.loader.Load(ctx, s.dataFile)
	if err != nil {
		if errors.Is(err, dataset.ErrSourceUnreadable) {
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
		return nil, err
	}
	return table, nil
}

// Snapshot computes every dashboard data product over one table load, so
// all sections describe the same data. It performs no rendering; the
// transport layer decides how to serve the result.
func (s *DashboardService) Snapshot(ctx context.Context) (*domain.DashboardSnapshot, error) {
	table, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	kpis := analytics.KPIs(table)

	snapshot := &domain.DashboardSnapshot{
		GeneratedAt:    now,
		Source:         table.Source,
		KPIs:           kpis,
		Cards:          formatCards(kpis),
		Statuses:       analytics.StatusDistribution(table),
		Departments:    formatDepartments(analytics.DepartmentAnalysis(table)),
		CostComparison: analytics.CostComparison(table),
		Schedule:       analytics.ScheduleHealth(table, now),
	}

	s.logger.InfoContext(ctx, "snapshot computed",
		slog.String("source", table.Source),
		slog.Int("projects", kpis.TotalProjects),
		slog.Int("rows", table.Len()),
	)
	return snapshot, nil
}

// KPIs computes only the headline indicators.
func (s *DashboardService) KPIs(ctx context.Context) (*domain.KPISummary, *domain.KPICards, error) {
	table, err := s.load(ctx)
	if err != nil {
		return nil, nil, err
	}
	kpis := analytics.KPIs(table)
	cards := formatCards(kpis)
	return &kpis, &cards, nil
}

// StatusDistribution computes the status wedges.
func (s *DashboardService) StatusDistribution(ctx context.Context) ([]domain.StatusSlice, error) {
	table, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.StatusDistribution(table), nil
}

// DepartmentAnalysis computes the per-department rollup with display
// strings attached.
func (s *DashboardService) DepartmentAnalysis(ctx context.Context) ([]domain.DepartmentAggregate, error) {
	table, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return formatDepartments(analytics.DepartmentAnalysis(table)), nil
}

// CostComparison computes the per-project cost table.
func (s *DashboardService) CostComparison(ctx context.Context) ([]domain.ProjectCost, error) {
	table, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.CostComparison(table), nil
}

// ScheduleHealth summarizes the schedule columns.
func (s *DashboardService) ScheduleHealth(ctx context.Context) (*domain.ScheduleSummary, error) {
	table, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	schedule := analytics.ScheduleHealth(table, s.now())
	return &schedule, nil
}

// Reload invalidates any cached table for the configured source and loads
// it again. Invalidation stays under caller control; this is the only
// path that drops a cache entry.
func (s *DashboardService) Reload(ctx context.Context) (*domain.DashboardSnapshot, error) {
	if invalidator, ok := s.loader.(interface{ Invalidate(string) }); ok {
		invalidator.Invalidate(s.dataFile)
		s.logger.InfoContext(ctx, "cache invalidated", slog.String("source", s.dataFile))
	}
	return s.Snapshot(ctx)
}

// formatCards renders the KPI card display strings. The average completion
// card shows percent units, so the fraction is scaled by 100 first.
func formatCards(kpis domain.KPISummary) domain.KPICards {
	return domain.KPICards{
		AvgCompletion: format.Percentage(kpis.AvgCompletion * 100),
		PlannedCosts:  format.Currency(kpis.PlannedCosts),
		ActualCosts:   format.Currency(kpis.ActualCosts),
		CostVariance:  format.Percentage(kpis.CostVariance),
	}
}

// formatDepartments attaches display strings to the department aggregates.
func formatDepartments(departments []domain.DepartmentAggregate) []domain.DepartmentAggregate {
	for i := range departments {
		departments[i].PlannedCostDisplay = format.Currency(departments[i].PlannedCost)
		departments[i].ActualCostDisplay = format.Currency(departments[i].ActualCost)
		departments[i].CompletionDisplay = format.Percentage(departments[i].AvgCompletion * 100)
	}
	return departments
}
