package exporter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cavalcanteprofissional/mittu-dashboard/pkg/contracts/domain"
)

func TestCSVWriter_WriteDepartments(t *testing.T) {
	departments := []domain.DepartmentAggregate{
		{Department: "A", Projects: 2, PlannedCost: 1500, AvgCompletion: 0.35, ActualCost: 1200},
		{Department: "B", Projects: 1, PlannedCost: 500, AvgCompletion: 0.2, ActualCost: 600},
	}

	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter().WriteDepartments(&buf, departments))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\xEF\xBB\xBF"), "expected UTF-8 BOM prefix")

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\xEF\xBB\xBF")))
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Department", "Projects", "PlannedCost", "AvgCompletion", "ActualCost"}, records[0])
	assert.Equal(t, []string{"A", "2", "R$ 1.500,00", "35,0%", "R$ 1.200,00"}, records[1])
	assert.Equal(t, []string{"B", "1", "R$ 500,00", "20,0%", "R$ 600,00"}, records[2])
}

func TestCSVWriter_WriteCostComparison(t *testing.T) {
	projects := []domain.ProjectCost{
		{ProjectID: "P1", Department: "A", PlannedCost: 1000, ActualCost: 600, VariancePercent: -40.0},
	}

	writer := NewCSVWriter()
	writer.BOMPrefix = false

	var buf bytes.Buffer
	require.NoError(t, writer.WriteCostComparison(&buf, projects))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"P1", "A", "R$ 1.000,00", "R$ 600,00", "-40,0%"}, records[1])
}

func TestCSVWriter_EmptyTable(t *testing.T) {
	writer := NewCSVWriter()
	writer.BOMPrefix = false

	var buf bytes.Buffer
	require.NoError(t, writer.WriteDepartments(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}
