package domain

import "time"

// ProjectRow is one cleaned row of the joined project-management table.
// A project usually spans several rows, one per cost entry: the planned
// cost repeats identically on each of them while the actual cost is
// additive. Pointer fields are nil when the source cell was missing or
// unparseable.
type ProjectRow struct {
	ProjectID   string     `json:"project_id"`
	Department  string     `json:"department"`
	Status      string     `json:"status"`
	Completion  *float64   `json:"completion,omitempty"`
	PlannedCost float64    `json:"planned_cost"`
	ActualCost  float64    `json:"actual_cost"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// HasCompletion reports whether the row carries a usable completion value.
func (r ProjectRow) HasCompletion() bool {
	return r.Completion != nil
}
