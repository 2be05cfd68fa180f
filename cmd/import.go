package main

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ess-tools/atlas-cli/internal/model"
	"github.com/ess-tools/atlas-cli/internal/survey"
)

var (
	importCSVPath    string
	importName       string
	importRegionCol  string
	importJoinPolicy string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a survey CSV export into the local store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		policy := cfg.Data.JoinPolicy
		if importJoinPolicy != "" {
			policy = importJoinPolicy
		}
		policy, err := survey.ParseJoinPolicy(policy)
		if err != nil {
			return err
		}

		regions, err := survey.LoadRegionMap(cfg.Data.RegionMap)
		if err != nil {
			return err
		}

		delim := ','
		if cfg.Data.Delimiter != "" {
			delim = rune(cfg.Data.Delimiter[0])
		}

		ds, err := survey.Load(importCSVPath, model.DefaultCatalog(), cfg.Data.Variables, regions, survey.LoadOptions{
			Delimiter:  delim,
			Charset:    cfg.Data.Charset,
			RegionCol:  importRegionCol,
			JoinPolicy: policy,
		})
		if err != nil {
			return eris.Wrap(err, "import csv")
		}

		name := importName
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(importCSVPath), filepath.Ext(importCSVPath))
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		rec, err := st.SaveDataset(ctx, name, ds.Source, ds.Observations, ds.Dropped)
		if err != nil {
			return err
		}

		zap.L().Info("import complete",
			zap.String("dataset", rec.ID),
			zap.String("name", rec.Name),
			zap.Int("rows", rec.Rows),
			zap.Int("dropped", rec.Dropped),
		)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importCSVPath, "csv", "", "path to survey CSV file (required)")
	importCmd.Flags().StringVar(&importName, "name", "", "dataset name (default: CSV file name)")
	importCmd.Flags().StringVar(&importRegionCol, "region-col", "region", "header name of the region code column")
	importCmd.Flags().StringVar(&importJoinPolicy, "join-policy", "", "strict or lenient (default from config)")
	_ = importCmd.MarkFlagRequired("csv")
	rootCmd.AddCommand(importCmd)
}
