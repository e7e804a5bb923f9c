package http

import (
	"context"

	"github.com/cavalcanteprofissional/mittu-dashboard/pkg/contracts/domain"
)

// DashboardServiceInterface defines the operations the dashboard handler
// needs from the service layer.
type DashboardServiceInterface interface {
	Snapshot(ctx context.Context) (*domain.DashboardSnapshot, error)
	KPIs(ctx context.Context) (*domain.KPISummary, *domain.KPICards, error)
	StatusDistribution(ctx context.Context) ([]domain.StatusSlice, error)
	DepartmentAnalysis(ctx context.Context) ([]domain.DepartmentAggregate, error)
	CostComparison(ctx context.Context) ([]domain.ProjectCost, error)
	ScheduleHealth(ctx context.Context) (*domain.ScheduleSummary, error)
	Reload(ctx context.Context) (*domain.DashboardSnapshot, error)
}
