package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ess-tools/atlas-cli/internal/rank"
	"github.com/ess-tools/atlas-cli/internal/store"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored ranking runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		runs, err := st.ListRankings(ctx, runsLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("no ranking runs stored")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATASET\tCREATED\tTHRESHOLD\tAPPROPRIATE\tVARIABLES")
		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.3f\t%d/%d\t%s\n",
				r.ID,
				r.DatasetID,
				r.CreatedAt.Format("2006-01-02 15:04"),
				r.Threshold,
				countAppropriate(r),
				len(r.Reports),
				strings.Join(r.Variables, ","),
			)
		}
		return w.Flush()
	},
}

func countAppropriate(r store.RankingRecord) int {
	n := 0
	for _, rep := range r.Reports {
		if rep.Outcome == rank.OutcomeAppropriate {
			n++
		}
	}
	return n
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum runs to list")
	rootCmd.AddCommand(runsCmd)
}
