package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"

	"github.com/ess-tools/atlas-cli/internal/rank"
)

// WriteTable renders the ranking as an aligned terminal table, descending
// by between-region sd with the threshold line at the bottom.
func WriteTable(w io.Writer, res rank.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "VARIABLE\tLABEL\tMEAN\tSD\tRANGE\tCV\tREGIONS\tAPPROPRIATE")
	for _, r := range res.Reports {
		if r.Outcome == rank.OutcomeInsufficientData {
			fmt.Fprintf(tw, "%s\t%s\t-\t-\t-\t-\t%d\t%s\n",
				r.Variable, r.Label, r.Regions, outcomeMark(r.Outcome))
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%.3f\t%.3f\t%.3f\t%.3f\t%d\t%s\n",
			r.Variable, r.Label, r.Mean, r.SD, r.Range, r.CV, r.Regions, outcomeMark(r.Outcome))
	}
	fmt.Fprintf(tw, "\nthreshold (median sd): %.3f\n", res.Threshold)

	return eris.Wrap(tw.Flush(), "report: flush table")
}
