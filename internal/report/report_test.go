package report

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/ess-tools/atlas-cli/internal/rank"
	"github.com/ess-tools/atlas-cli/internal/selection"
)

func testResult() rank.Result {
	return rank.Result{
		Threshold: 0.310,
		Reports: []rank.Report{
			{Variable: "stflife", Label: "Life satisfaction", Mean: 6.1, SD: 0.42, Range: 1.2, CV: 0.069, Regions: 12, Outcome: rank.OutcomeAppropriate, Reason: "above threshold"},
			{Variable: "happy", Label: "Happiness", Mean: 7.0, SD: 0.20, Range: 0.6, CV: 0.029, Regions: 12, Outcome: rank.OutcomeNotAppropriate, Reason: "below threshold"},
			{Variable: "ipgdtim", Label: "Important to have a good time", Regions: 1, Outcome: rank.OutcomeInsufficientData, Reason: "only 1 region(s)"},
		},
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, testResult()))

	out := buf.String()
	assert.Contains(t, out, "VARIABLE")
	assert.Contains(t, out, "stflife")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "no")
	assert.Contains(t, out, "insufficient_data")
	assert.Contains(t, out, "threshold (median sd): 0.310")
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranking.xlsx")
	summaries := []selection.RegionSummary{
		{Region: "Gorenjska", Count: 120, Mean: 7.1},
		{Region: "Koroška", Count: 85, Mean: 5.4},
	}

	require.NoError(t, WriteXLSX(path, testResult(), summaries))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)

	ranking, ok := f.Sheet["Ranking"]
	require.True(t, ok)
	// Header + 3 reports + threshold row.
	assert.Len(t, ranking.Rows, 5)
	assert.Equal(t, "stflife", ranking.Rows[1].Cells[0].String())

	regions, ok := f.Sheet["Regions"]
	require.True(t, ok)
	assert.Len(t, regions.Rows, 3)
	assert.Equal(t, "Gorenjska", regions.Rows[1].Cells[0].String())
}

func TestWriteXLSXNoSummaries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranking.xlsx")
	require.NoError(t, WriteXLSX(path, testResult(), nil))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	_, ok := f.Sheet["Regions"]
	assert.False(t, ok)
}
