package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/cavalcanteprofissional/mittu-dashboard/internal/dataset"
	"github.com/cavalcanteprofissional/mittu-dashboard/pkg/contracts/domain"
)

// projectFacts holds the per-project values that must be counted exactly
// once: the planned cost and department come from the project's first row,
// the representative completion is the first non-missing value, and the
// actual cost accumulates across every row.
type projectFacts struct {
	department  string
	status      string
	plannedCost float64
	completion  *float64
	actualCost  float64
	startDate   *time.Time
	deadline    *time.Time
}

// collectProjects folds the table into one facts record per distinct
// project, keeping first-seen order in the returned id slice.
func collectProjects(t *dataset.Table) ([]string, map[string]*projectFacts) {
	facts := make(map[string]*projectFacts)
	var ids []string

	for i := range t.Rows {
		row := &t.Rows[i]
		p, ok := facts[row.ProjectID]
		if !ok {
			p = &projectFacts{
				department:  row.Department,
				status:      row.Status,
				plannedCost: row.PlannedCost,
				completion:  row.Completion,
				startDate:   row.StartDate,
				deadline:    row.Deadline,
			}
			facts[row.ProjectID] = p
			ids = append(ids, row.ProjectID)
		}
		p.actualCost += row.ActualCost
		if p.completion == nil {
			p.completion = row.Completion
		}
		if p.startDate == nil {
			p.startDate = row.StartDate
		}
		if p.deadline == nil {
			p.deadline = row.Deadline
		}
	}
	return ids, facts
}

// KPIs computes the headline indicators over the whole table.
//
// Planned cost is summed once per distinct project (it repeats on every
// cost row), actual cost over every row. The average completion is taken
// over distinct projects with a usable value; with none it reports 0.0
// rather than NaN. The variance percentage is 0.0 whenever the planned
// sum is zero.
func KPIs(t *dataset.Table) domain.KPISummary {
	ids, facts := collectProjects(t)

	kpi := domain.KPISummary{
		TotalProjects: len(ids),
		StatusCounts:  make(map[string]int),
	}

	statusProjects := make(map[string]map[string]bool)
	for i := range t.Rows {
		row := &t.Rows[i]
		if statusProjects[row.Status] == nil {
			statusProjects[row.Status] = make(map[string]bool)
		}
		statusProjects[row.Status][row.ProjectID] = true
	}
	for status, projects := range statusProjects {
		kpi.StatusCounts[status] = len(projects)
	}

	var completionSum float64
	var completionN int
	for _, id := range ids {
		p := facts[id]
		kpi.PlannedCosts += p.plannedCost
		if p.completion != nil {
			completionSum += *p.completion
			completionN++
		}
	}
	for i := range t.Rows {
		kpi.ActualCosts += t.Rows[i].ActualCost
	}

	if completionN > 0 {
		kpi.AvgCompletion = completionSum / float64(completionN)
	}
	kpi.CostVariance = variancePercent(kpi.PlannedCosts, kpi.ActualCosts)
	return kpi
}

// StatusDistribution counts distinct projects per status and pairs each
// status with its display color. Slices come back sorted by status so
// responses are stable.
func StatusDistribution(t *dataset.Table) []domain.StatusSlice {
	statusProjects := make(map[string]map[string]bool)
	for i := range t.Rows {
		row := &t.Rows[i]
		if statusProjects[row.Status] == nil {
			statusProjects[row.Status] = make(map[string]bool)
		}
		statusProjects[row.Status][row.ProjectID] = true
	}

	slices := make([]domain.StatusSlice, 0, len(statusProjects))
	for status, projects := range statusProjects {
		slices = append(slices, domain.StatusSlice{
			Status:   status,
			Projects: len(projects),
			Color:    StatusColor(status),
		})
	}
	sort.Slice(slices, func(i, j int) bool { return slices[i].Status < slices[j].Status })
	return slices
}

// DepartmentAnalysis rolls the table up by department. Project counts,
// planned cost, and average completion deduplicate by project first (a
// project with many cost rows must not bias them); actual cost sums every
// row attributed to the department. Values are rounded to two decimals
// here, at the presentation boundary.
func DepartmentAnalysis(t *dataset.Table) []domain.DepartmentAggregate {
	ids, facts := collectProjects(t)

	type deptAccum struct {
		projects      int
		plannedCost   float64
		completionSum float64
		completionN   int
		actualCost    float64
	}
	byDept := make(map[string]*deptAccum)
	accum := func(dept string) *deptAccum {
		a, ok := byDept[dept]
		if !ok {
			a = &deptAccum{}
			byDept[dept] = a
		}
		return a
	}

	for _, id := range ids {
		p := facts[id]
		a := accum(p.department)
		a.projects++
		a.plannedCost += p.plannedCost
		if p.completion != nil {
			a.completionSum += *p.completion
			a.completionN++
		}
	}
	for i := range t.Rows {
		row := &t.Rows[i]
		accum(row.Department).actualCost += row.ActualCost
	}

	out := make([]domain.DepartmentAggregate, 0, len(byDept))
	for dept, a := range byDept {
		agg := domain.DepartmentAggregate{
			Department:  dept,
			Projects:    a.projects,
			PlannedCost: round2(a.plannedCost),
			ActualCost:  round2(a.actualCost),
		}
		if a.completionN > 0 {
			agg.AvgCompletion = round2(a.completionSum / float64(a.completionN))
		}
		out = append(out, agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out
}

// CostComparison pairs each distinct project's planned cost with the sum
// of its actual cost entries. A project without cost rows reports 0, not
// missing. Results are sorted by project identifier.
func CostComparison(t *dataset.Table) []domain.ProjectCost {
	ids, facts := collectProjects(t)

	out := make([]domain.ProjectCost, 0, len(ids))
	for _, id := range ids {
		p := facts[id]
		out = append(out, domain.ProjectCost{
			ProjectID:       id,
			Department:      p.department,
			PlannedCost:     p.plannedCost,
			ActualCost:      round2(p.actualCost),
			VariancePercent: round2(variancePercent(p.plannedCost, p.actualCost)),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProjectID < out[j].ProjectID })
	return out
}

// ScheduleHealth summarizes the schedule columns: how many projects carry
// a deadline, how many of those are overdue (deadline past now and not
// concluded), and how many fall due within the next 30 days.
func ScheduleHealth(t *dataset.Table, now time.Time) domain.ScheduleSummary {
	ids, facts := collectProjects(t)

	var s domain.ScheduleSummary
	horizon := now.Add(30 * 24 * time.Hour)

	for _, id := range ids {
		p := facts[id]
		if p.startDate != nil {
			if s.EarliestStart == nil || p.startDate.Before(*s.EarliestStart) {
				start := *p.startDate
				s.EarliestStart = &start
			}
		}
		if p.deadline == nil {
			continue
		}
		s.ProjectsWithDeadline++
		if s.LatestDeadline == nil || p.deadline.After(*s.LatestDeadline) {
			deadline := *p.deadline
			s.LatestDeadline = &deadline
		}
		switch {
		case p.deadline.Before(now) && p.status != dataset.StatusCompleted:
			s.Overdue++
		case !p.deadline.Before(now) && !p.deadline.After(horizon):
			s.DueWithin30Days++
		}
	}
	return s
}

// variancePercent computes (actual-planned)/planned*100, defined as 0.0
// when planned is zero.
func variancePercent(planned, actual float64) float64 {
	if planned == 0 {
		return 0.0
	}
	return (actual - planned) / planned * 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
