package domain

import "time"

// KPISummary represents the headline indicators shown at the top of the
// dashboard. Monetary and completion values are raw numbers; the formatted
// card strings live in KPICards.
type KPISummary struct {
	TotalProjects int            `json:"total_projects"`
	StatusCounts  map[string]int `json:"status_counts"`
	AvgCompletion float64        `json:"avg_completion"`
	PlannedCosts  float64        `json:"planned_costs"`
	ActualCosts   float64        `json:"actual_costs"`
	CostVariance  float64        `json:"cost_variance"`
}

// KPICards carries the display strings for the KPI cards, formatted in the
// pt-BR convention the dashboard renders.
type KPICards struct {
	AvgCompletion string `json:"avg_completion"`
	PlannedCosts  string `json:"planned_costs"`
	ActualCosts   string `json:"actual_costs"`
	CostVariance  string `json:"cost_variance"`
}

// StatusSlice is one wedge of the status distribution chart: a status value,
// how many distinct projects carry it, and the display color assigned to it.
type StatusSlice struct {
	Status   string `json:"status"`
	Projects int    `json:"projects"`
	Color    string `json:"color"`
}

// DepartmentAggregate represents the per-department rollup. Planned cost and
// completion are deduplicated per project; actual cost sums every cost entry
// attributed to the department. Values are rounded to two decimals.
type DepartmentAggregate struct {
	Department    string  `json:"department"`
	Projects      int     `json:"projects"`
	PlannedCost   float64 `json:"planned_cost"`
	AvgCompletion float64 `json:"avg_completion"`
	ActualCost    float64 `json:"actual_cost"`

	// Formatted display strings, populated at the service boundary.
	PlannedCostDisplay string `json:"planned_cost_display,omitempty"`
	ActualCostDisplay  string `json:"actual_cost_display,omitempty"`
	CompletionDisplay  string `json:"completion_display,omitempty"`
}

// ProjectCost pairs a project's single planned cost with the sum of its
// actual cost entries. VariancePercent is rounded to two decimals and is
// 0.0 whenever the planned cost is zero.
type ProjectCost struct {
	ProjectID       string  `json:"project_id"`
	Department      string  `json:"department"`
	PlannedCost     float64 `json:"planned_cost"`
	ActualCost      float64 `json:"actual_cost"`
	VariancePercent float64 `json:"variance_percent"`
}

// ScheduleSummary reports schedule health derived from the start and
// deadline columns. Projects without a parseable deadline are excluded.
type ScheduleSummary struct {
	ProjectsWithDeadline int        `json:"projects_with_deadline"`
	Overdue              int        `json:"overdue"`
	DueWithin30Days      int        `json:"due_within_30_days"`
	EarliestStart        *time.Time `json:"earliest_start,omitempty"`
	LatestDeadline       *time.Time `json:"latest_deadline,omitempty"`
}

// DashboardSnapshot bundles every data product a render pass needs. It is
// computed in one call so all sections describe the same table load.
type DashboardSnapshot struct {
	GeneratedAt    time.Time             `json:"generated_at"`
	Source         string                `json:"source"`
	KPIs           KPISummary            `json:"kpis"`
	Cards          KPICards              `json:"cards"`
	Statuses       []StatusSlice         `json:"statuses"`
	Departments    []DepartmentAggregate `json:"departments"`
	CostComparison []ProjectCost         `json:"cost_comparison"`
	Schedule       ScheduleSummary       `json:"schedule"`
}
