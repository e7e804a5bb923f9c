package dataset

import (
	"time"

	"github.com/cavalcanteprofissional/mittu-dashboard/pkg/contracts/domain"
)

// Table is the cleaned, immutable project table. It is built once per load
// and never mutated afterwards; aggregate queries are pure functions over
// it and are safe to run concurrently.
type Table struct {
	Rows        []domain.ProjectRow
	Source      string
	LoadedAt    time.Time
	DroppedRows int
}

// Len returns the number of surviving rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ProjectIDs returns the distinct project identifiers in first-seen order.
func (t *Table) ProjectIDs() []string {
	seen := make(map[string]bool, len(t.Rows))
	var ids []string
	for _, row := range t.Rows {
		if !seen[row.ProjectID] {
			seen[row.ProjectID] = true
			ids = append(ids, row.ProjectID)
		}
	}
	return ids
}
