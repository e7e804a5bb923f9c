// Package exporter renders dashboard data products as downloadable CSV.
// The number formatting intentionally reuses the pt-BR display convention
// so exported tables match what the dashboard shows.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cavalcanteprofissional/mittu-dashboard/internal/format"
	"github.com/cavalcanteprofissional/mittu-dashboard/pkg/contracts/domain"
)

// CSVWriter streams CSV exports of the dashboard tables.
type CSVWriter struct {
	// BOMPrefix prepends a UTF-8 BOM so Excel detects the encoding.
	BOMPrefix bool
}

// NewCSVWriter creates a CSV writer with Excel-friendly defaults.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{BOMPrefix: true}
}

// WriteDepartments writes the department aggregate table.
func (w *CSVWriter) WriteDepartments(out io.Writer, departments []domain.DepartmentAggregate) error {
	headers := []string{"Department", "Projects", "PlannedCost", "AvgCompletion", "ActualCost"}
	records := make([][]string, 0, len(departments))
	for _, d := range departments {
		records = append(records, []string{
			d.Department,
			strconv.Itoa(d.Projects),
			format.Currency(d.PlannedCost),
			format.Percentage(d.AvgCompletion * 100),
			format.Currency(d.ActualCost),
		})
	}
	return w.write(out, headers, records)
}

// WriteCostComparison writes the per-project cost table.
func (w *CSVWriter) WriteCostComparison(out io.Writer, projects []domain.ProjectCost) error {
	headers := []string{"ProjectID", "Department", "PlannedCost", "ActualCost", "VariancePercent"}
	records := make([][]string, 0, len(projects))
	for _, p := range projects {
		records = append(records, []string{
			p.ProjectID,
			p.Department,
			format.Currency(p.PlannedCost),
			format.Currency(p.ActualCost),
			format.Percentage(p.VariancePercent),
		})
	}
	return w.write(out, headers, records)
}

func (w *CSVWriter) write(out io.Writer, headers []string, records [][]string) error {
	if w.BOMPrefix {
		if _, err := out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
