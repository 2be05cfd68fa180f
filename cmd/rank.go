package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ess-tools/atlas-cli/internal/model"
	"github.com/ess-tools/atlas-cli/internal/rank"
	"github.com/ess-tools/atlas-cli/internal/report"
)

var (
	rankDatasetID string
	rankVars      []string
	rankXLSXPath  string
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank candidate variables by regional dispersion",
	Long:  "Computes regional means per candidate variable, classifies each against the median standard deviation across the set, and prints the ranking.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		rec, obs, err := resolveDataset(ctx, st, rankDatasetID)
		if err != nil {
			return err
		}

		vars := candidateVars(rankVars)
		res, err := rank.Rank(obs, model.DefaultCatalog(), vars)
		if err != nil {
			return eris.Wrap(err, "rank variables")
		}

		run, err := st.SaveRanking(ctx, rec.ID, res, vars)
		if err != nil {
			return err
		}

		if err := report.WriteTable(os.Stdout, res); err != nil {
			return err
		}

		if rankXLSXPath != "" {
			if err := report.WriteXLSX(rankXLSXPath, res, nil); err != nil {
				return eris.Wrap(err, "write xlsx report")
			}
			zap.L().Info("wrote xlsx report", zap.String("path", rankXLSXPath))
		}

		zap.L().Info("ranking complete",
			zap.String("run", run.ID),
			zap.String("dataset", rec.ID),
			zap.Float64("threshold", res.Threshold),
			zap.Int("variables", len(res.Reports)),
		)
		return nil
	},
}

func init() {
	rankCmd.Flags().StringVar(&rankDatasetID, "dataset", "", "dataset ID (default: most recent import)")
	rankCmd.Flags().StringSliceVar(&rankVars, "vars", nil, "candidate variables (default from config)")
	rankCmd.Flags().StringVar(&rankXLSXPath, "xlsx", "", "also write the ranking to this XLSX file")
	rootCmd.AddCommand(rankCmd)
}
