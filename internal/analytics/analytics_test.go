package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/cavalcanteprofissional/mittu-dashboard/internal/dataset"
	"github.com/cavalcanteprofissional/mittu-dashboard/pkg/contracts/domain"
)

func floatPtr(v float64) *float64 { return &v }

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func tableOf(rows ...domain.ProjectRow) *dataset.Table {
	return &dataset.Table{Rows: rows, Source: "test"}
}

// sampleTable mirrors the canonical three-row scenario: P1 has two cost
// entries in department A, P2 one in department B.
func sampleTable() *dataset.Table {
	return tableOf(
		domain.ProjectRow{ProjectID: "P1", Department: "A", Status: "em dia", Completion: floatPtr(0.5), PlannedCost: 1000, ActualCost: 400},
		domain.ProjectRow{ProjectID: "P1", Department: "A", Status: "em dia", Completion: floatPtr(0.5), PlannedCost: 1000, ActualCost: 200},
		domain.ProjectRow{ProjectID: "P2", Department: "B", Status: "atrasado", Completion: floatPtr(0.2), PlannedCost: 500, ActualCost: 600},
	)
}

func TestKPIs(t *testing.T) {
	kpis := KPIs(sampleTable())

	assert.Equal(t, 2, kpis.TotalProjects)
	assert.Equal(t, map[string]int{"em dia": 1, "atrasado": 1}, kpis.StatusCounts)
	// Completion averages once per distinct project, not per row.
	assert.InDelta(t, 0.35, kpis.AvgCompletion, 1e-9)
	// Planned cost counts once per project, actual cost every entry.
	assert.InDelta(t, 1500, kpis.PlannedCosts, 1e-9)
	assert.InDelta(t, 1200, kpis.ActualCosts, 1e-9)
	assert.InDelta(t, -20.0, kpis.CostVariance, 1e-9)
}

func TestKPIs_MissingCompletionExcluded(t *testing.T) {
	table := tableOf(
		domain.ProjectRow{ProjectID: "P1", Completion: floatPtr(0.5)},
		domain.ProjectRow{ProjectID: "P2", Completion: nil},
		domain.ProjectRow{ProjectID: "P3", Completion: floatPtr(0.3)},
	)

	kpis := KPIs(table)
	// Missing values are excluded from the mean, not treated as zero.
	assert.InDelta(t, 0.4, kpis.AvgCompletion, 1e-9)
}

func TestKPIs_NoCompletionValues(t *testing.T) {
	table := tableOf(
		domain.ProjectRow{ProjectID: "P1"},
		domain.ProjectRow{ProjectID: "P2"},
	)

	kpis := KPIs(table)
	assert.Equal(t, 0.0, kpis.AvgCompletion)
}

func TestKPIs_ZeroPlannedVariance(t *testing.T) {
	tests := []struct {
		name   string
		actual float64
	}{
		{name: "zero actual", actual: 0},
		{name: "nonzero actual", actual: 750},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := tableOf(
				domain.ProjectRow{ProjectID: "P1", PlannedCost: 0, ActualCost: tt.actual},
			)
			kpis := KPIs(table)
			assert.Equal(t, 0.0, kpis.CostVariance)
		})
	}
}

func TestKPIs_EmptyTable(t *testing.T) {
	kpis := KPIs(tableOf())
	assert.Zero(t, kpis.TotalProjects)
	assert.Equal(t, 0.0, kpis.AvgCompletion)
	assert.Equal(t, 0.0, kpis.CostVariance)
	assert.Empty(t, kpis.StatusCounts)
}

func TestStatusDistribution(t *testing.T) {
	table := tableOf(
		domain.ProjectRow{ProjectID: "P1", Status: "em dia"},
		domain.ProjectRow{ProjectID: "P1", Status: "em dia"},
		domain.ProjectRow{ProjectID: "P2", Status: "atrasado"},
		domain.ProjectRow{ProjectID: "P3", Status: "inventado"},
	)

	slices := StatusDistribution(table)
	require.Len(t, slices, 3)

	byStatus := make(map[string]domain.StatusSlice)
	for _, s := range slices {
		byStatus[s.Status] = s
	}

	assert.Equal(t, 1, byStatus["em dia"].Projects)
	assert.Equal(t, "#2E8B57", byStatus["em dia"].Color)
	assert.Equal(t, "#FF8C00", byStatus["atrasado"].Color)
	// Unknown status falls back to the neutral color.
	assert.Equal(t, DefaultStatusColor, byStatus["inventado"].Color)
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, "#DC143C", StatusColor(dataset.StatusCritical))
	assert.Equal(t, "#708090", StatusColor(dataset.StatusPaused))
	assert.Equal(t, "#4682B4", StatusColor(dataset.StatusCompleted))
	assert.Equal(t, "#3CB371", StatusColor(dataset.StatusInProgress))
	assert.Equal(t, DefaultStatusColor, StatusColor("whatever"))
}

func TestDepartmentAnalysis(t *testing.T) {
	departments := DepartmentAnalysis(sampleTable())
	require.Len(t, departments, 2)

	a, b := departments[0], departments[1]
	assert.Equal(t, "A", a.Department)
	assert.Equal(t, 1, a.Projects)
	assert.InDelta(t, 1000, a.PlannedCost, 1e-9)
	assert.InDelta(t, 0.5, a.AvgCompletion, 1e-9)
	assert.InDelta(t, 600, a.ActualCost, 1e-9)

	assert.Equal(t, "B", b.Department)
	assert.Equal(t, 1, b.Projects)
	assert.InDelta(t, 500, b.PlannedCost, 1e-9)
	assert.InDelta(t, 0.2, b.AvgCompletion, 1e-9)
	assert.InDelta(t, 600, b.ActualCost, 1e-9)
}

// A project whose cost rows repeat across two departments must count its
// planned cost exactly once: the deduplicated total must equal the sum of
// the per-department planned aggregates.
func TestDepartmentAnalysis_NoDoubleCounting(t *testing.T) {
	table := tableOf(
		domain.ProjectRow{ProjectID: "P1", Department: "A", PlannedCost: 1000, ActualCost: 100},
		domain.ProjectRow{ProjectID: "P1", Department: "B", PlannedCost: 1000, ActualCost: 150},
		domain.ProjectRow{ProjectID: "P2", Department: "B", PlannedCost: 500, ActualCost: 300},
		domain.ProjectRow{ProjectID: "P2", Department: "B", PlannedCost: 500, ActualCost: 50},
	)

	kpis := KPIs(table)
	departments := DepartmentAnalysis(table)

	var deptPlannedSum, deptActualSum float64
	for _, d := range departments {
		deptPlannedSum += d.PlannedCost
		deptActualSum += d.ActualCost
	}

	assert.InDelta(t, kpis.PlannedCosts, deptPlannedSum, 1e-9)
	assert.InDelta(t, 1500, deptPlannedSum, 1e-9)
	assert.InDelta(t, kpis.ActualCosts, deptActualSum, 1e-9)
}

func TestCostComparison(t *testing.T) {
	projects := CostComparison(sampleTable())
	require.Len(t, projects, 2)

	p1 := projects[0]
	assert.Equal(t, "P1", p1.ProjectID)
	assert.Equal(t, "A", p1.Department)
	assert.InDelta(t, 1000, p1.PlannedCost, 1e-9)
	assert.InDelta(t, 600, p1.ActualCost, 1e-9)
	assert.InDelta(t, -40.0, p1.VariancePercent, 1e-9)

	p2 := projects[1]
	assert.InDelta(t, 20.0, p2.VariancePercent, 1e-9)
}

func TestCostComparison_NoCostEntries(t *testing.T) {
	table := tableOf(
		domain.ProjectRow{ProjectID: "P1", Department: "A", PlannedCost: 1000, ActualCost: 0},
	)

	projects := CostComparison(table)
	require.Len(t, projects, 1)
	// Missing actual spend reports 0, not missing.
	assert.Equal(t, 0.0, projects[0].ActualCost)
	assert.InDelta(t, -100.0, projects[0].VariancePercent, 1e-9)
}

func TestCostComparison_VarianceRounding(t *testing.T) {
	table := tableOf(
		domain.ProjectRow{ProjectID: "P1", PlannedCost: 300, ActualCost: 100},
	)

	projects := CostComparison(table)
	require.Len(t, projects, 1)
	assert.InDelta(t, -66.67, projects[0].VariancePercent, 1e-9)
}

func TestScheduleHealth(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	table := tableOf(
		// Overdue; deadline past and not concluded.
		domain.ProjectRow{ProjectID: "P1", Status: "atrasado", StartDate: datePtr(2024, 1, 10), Deadline: datePtr(2024, 5, 15)},
		// Past deadline but concluded; not overdue.
		domain.ProjectRow{ProjectID: "P2", Status: "concluido", StartDate: datePtr(2024, 2, 1), Deadline: datePtr(2024, 4, 30)},
		// Due within 30 days.
		domain.ProjectRow{ProjectID: "P3", Status: "em dia", Deadline: datePtr(2024, 6, 20)},
		// No deadline; excluded.
		domain.ProjectRow{ProjectID: "P4", Status: "em dia"},
	)

	s := ScheduleHealth(table, now)
	assert.Equal(t, 3, s.ProjectsWithDeadline)
	assert.Equal(t, 1, s.Overdue)
	assert.Equal(t, 1, s.DueWithin30Days)
	require.NotNil(t, s.EarliestStart)
	assert.True(t, s.EarliestStart.Equal(*datePtr(2024, 1, 10)))
	require.NotNil(t, s.LatestDeadline)
	assert.True(t, s.LatestDeadline.Equal(*datePtr(2024, 6, 20)))
}

// Aggregates never mutate the table, so concurrent queries over one load
// must be safe.
func TestAggregates_ConcurrentUse(t *testing.T) {
	table := sampleTable()
	now := time.Now()

	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			kpis := KPIs(table)
			if kpis.TotalProjects != 2 {
				t.Errorf("unexpected project count: %d", kpis.TotalProjects)
			}
			StatusDistribution(table)
			DepartmentAnalysis(table)
			CostComparison(table)
			ScheduleHealth(table, now)
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
