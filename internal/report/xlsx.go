// Package report writes ranking results as terminal tables and XLSX
// workbooks.
package report

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/ess-tools/atlas-cli/internal/rank"
	"github.com/ess-tools/atlas-cli/internal/selection"
)

// WriteXLSX writes the ranked appropriateness table and, when summaries are
// given, a second sheet with per-region info for the active variable.
func WriteXLSX(path string, res rank.Result, summaries []selection.RegionSummary) error {
	f := xlsx.NewFile()

	sheet, err := f.AddSheet("Ranking")
	if err != nil {
		return eris.Wrap(err, "report: add ranking sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{"Variable", "Label", "Mean", "SD", "Range", "CV", "Regions", "Outcome", "Reason"} {
		header.AddCell().SetString(h)
	}

	for _, r := range res.Reports {
		row := sheet.AddRow()
		row.AddCell().SetString(r.Variable)
		row.AddCell().SetString(r.Label)
		if r.Outcome == rank.OutcomeInsufficientData {
			row.AddCell().SetString("")
			row.AddCell().SetString("")
			row.AddCell().SetString("")
			row.AddCell().SetString("")
		} else {
			row.AddCell().SetFloat(r.Mean)
			row.AddCell().SetFloat(r.SD)
			row.AddCell().SetFloat(r.Range)
			row.AddCell().SetFloat(r.CV)
		}
		row.AddCell().SetInt(r.Regions)
		row.AddCell().SetString(r.Outcome)
		row.AddCell().SetString(r.Reason)
	}

	meta := sheet.AddRow()
	meta.AddCell().SetString("threshold (median sd)")
	meta.AddCell().SetFloat(res.Threshold)

	if len(summaries) > 0 {
		regions, err := f.AddSheet("Regions")
		if err != nil {
			return eris.Wrap(err, "report: add regions sheet")
		}
		header := regions.AddRow()
		for _, h := range []string{"Region", "Observations", "Mean"} {
			header.AddCell().SetString(h)
		}
		for _, s := range summaries {
			row := regions.AddRow()
			row.AddCell().SetString(s.Region)
			row.AddCell().SetInt(s.Count)
			row.AddCell().SetFloat(s.Mean)
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "report: save %s", path)
	}
	return nil
}

// outcomeMark is the terminal-table marker for an outcome.
func outcomeMark(outcome string) string {
	switch outcome {
	case rank.OutcomeAppropriate:
		return "yes"
	case rank.OutcomeNotAppropriate:
		return "no"
	default:
		return fmt.Sprintf("-- (%s)", outcome)
	}
}
