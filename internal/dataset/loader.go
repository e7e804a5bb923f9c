package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/cavalcanteprofissional/mittu-dashboard/pkg/contracts/domain"
)

// ErrSourceUnreadable reports that the data source could not be read as a
// table at all: missing file, unreadable workbook, or no recognizable
// header row. Per-cell problems never surface through this error.
var ErrSourceUnreadable = errors.New("data source unreadable")

// Loader produces a cleaned table from a source path.
type Loader interface {
	Load(ctx context.Context, path string) (*Table, error)
}

// FileLoader reads delimited text files and Excel workbooks from disk.
type FileLoader struct {
	logger  *slog.Logger
	metrics *Metrics
}

// NewFileLoader creates a loader. A nil logger falls back to slog.Default;
// a nil metrics disables instrumentation.
func NewFileLoader(logger *slog.Logger, metrics *Metrics) *FileLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileLoader{
		logger:  logger.With(slog.String("component", "dataset_loader")),
		metrics: metrics,
	}
}

// Load reads and cleans the table at path. Excel workbooks are detected by
// extension; everything else is treated as delimited text.
func (l *FileLoader) Load(ctx context.Context, path string) (*Table, error) {
	start := time.Now()

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = l.readWorkbook(path)
	default:
		rows, err = l.readDelimited(path)
	}
	if err != nil {
		l.metrics.RecordLoad(ctx, path, false)
		return nil, err
	}

	table, err := l.buildTable(path, rows)
	if err != nil {
		l.metrics.RecordLoad(ctx, path, false)
		return nil, err
	}

	l.metrics.RecordLoad(ctx, path, true)
	l.metrics.RecordDroppedRows(ctx, path, table.DroppedRows)

	l.logger.InfoContext(ctx, "table loaded",
		slog.String("source", path),
		slog.Int("rows", table.Len()),
		slog.Int("dropped_rows", table.DroppedRows),
		slog.Duration("elapsed", time.Since(start)),
	)
	return table, nil
}

// readDelimited parses a CSV file, accepting either comma or semicolon as
// the field separator. The separator is sniffed from the header line.
func (l *FileLoader) readDelimited(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrSourceUnreadable, path, err)
	}
	defer f.Close()

	header := make([]byte, 4096)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: read %s: %v", ErrSourceUnreadable, path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seek %s: %v", ErrSourceUnreadable, path, err)
	}

	reader := csv.NewReader(f)
	reader.Comma = sniffDelimiter(string(header[:n]))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrSourceUnreadable, path, err)
	}
	return rows, nil
}

// readWorkbook extracts rows from the first sheet whose header row maps to
// the expected columns.
func (l *FileLoader) readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook %s: %v", ErrSourceUnreadable, path, err)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}
		if _, ok := mapColumns(rows[0]); ok {
			l.logger.Debug("found project data sheet", slog.String("sheet_name", name))
			return rows, nil
		}
	}
	return nil, fmt.Errorf("%w: no sheet with project columns in %s", ErrSourceUnreadable, path)
}

// sniffDelimiter picks the field separator from the header line. Exports
// from spreadsheet tools in pt-BR locales use semicolons.
func sniffDelimiter(header string) rune {
	if line, _, found := strings.Cut(header, "\n"); found || line != "" {
		header = line
	}
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}

// columnIndexes maps each logical column to its position in the header row.
type columnIndexes struct {
	projectID  int
	department int
	status     int
	completion int
	planned    int
	actual     int
	start      int
	deadline   int
}

// headerAliases accepts both the Portuguese headers of the joined export
// and their English equivalents.
var headerAliases = map[string][]string{
	"project_id": {"project_id", "projeto", "id_projeto"},
	"department": {"area", "área", "department", "departamento"},
	"status":     {"status"},
	"completion": {"conclusao", "conclusão", "completion"},
	"planned":    {"custo_previsto", "planned_cost", "custo previsto"},
	"actual":     {"valor", "actual_cost", "custo_real"},
	"start":      {"inicio", "início", "start_date"},
	"deadline":   {"prazo", "deadline", "fim"},
}

// mapColumns resolves header names to indexes. Only the project identifier
// column is mandatory; any other missing column degrades to empty cells.
func mapColumns(header []string) (columnIndexes, bool) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.ToLower(strings.TrimSpace(h))] = i
	}

	find := func(key string) int {
		for _, alias := range headerAliases[key] {
			if i, ok := pos[alias]; ok {
				return i
			}
		}
		return -1
	}

	cols := columnIndexes{
		projectID:  find("project_id"),
		department: find("department"),
		status:     find("status"),
		completion: find("completion"),
		planned:    find("planned"),
		actual:     find("actual"),
		start:      find("start"),
		deadline:   find("deadline"),
	}
	return cols, cols.projectID >= 0
}

// cell returns the trimmed value at index i, or "" when the row is short
// or the column is absent.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// buildTable cleans raw rows into a Table. Rows without a project
// identifier are dropped and counted; every other malformed cell degrades
// per the cleaning rules.
func (l *FileLoader) buildTable(path string, rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrSourceUnreadable, path)
	}

	cols, ok := mapColumns(rows[0])
	if !ok {
		return nil, fmt.Errorf("%w: %s has no project identifier column", ErrSourceUnreadable, path)
	}

	table := &Table{
		Source:   path,
		LoadedAt: time.Now(),
		Rows:     make([]domain.ProjectRow, 0, len(rows)-1),
	}

	for _, raw := range rows[1:] {
		id := cell(raw, cols.projectID)
		if id == "" {
			table.DroppedRows++
			continue
		}
		table.Rows = append(table.Rows, domain.ProjectRow{
			ProjectID:   id,
			Department:  cell(raw, cols.department),
			Status:      cell(raw, cols.status),
			Completion:  CleanCompletion(cell(raw, cols.completion)),
			PlannedCost: CleanCost(cell(raw, cols.planned)),
			ActualCost:  CleanCost(cell(raw, cols.actual)),
			StartDate:   CleanDate(cell(raw, cols.start)),
			Deadline:    CleanDate(cell(raw, cols.deadline)),
		})
	}
	return table, nil
}
