package main

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ess-tools/atlas-cli/internal/chart"
	"github.com/ess-tools/atlas-cli/internal/geo"
	"github.com/ess-tools/atlas-cli/internal/model"
	"github.com/ess-tools/atlas-cli/internal/rank"
	"github.com/ess-tools/atlas-cli/internal/survey"
)

var (
	renderDatasetID string
	renderVar       string
	renderYVar      string
	renderOutDir    string
	renderSelected  []string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render regional charts as PNG files",
	Long:  "Renders a choropleth of regional means, a scatter of the two variables, and a per-region dumbbell comparison, in parallel.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		catalog := model.DefaultCatalog()
		if catalog.ByName(renderVar) == nil {
			return eris.Errorf("unknown variable %q", renderVar)
		}
		if catalog.ByName(renderYVar) == nil {
			return eris.Errorf("unknown variable %q", renderYVar)
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		rec, obs, err := resolveDataset(ctx, st, renderDatasetID)
		if err != nil {
			return err
		}

		regions, err := survey.LoadRegionMap(cfg.Data.RegionMap)
		if err != nil {
			return err
		}

		shapes, err := geo.LoadShapefile(cfg.Geo.Shapefile, cfg.Geo.NameField)
		if err != nil {
			return err
		}
		shapes, err = geo.Join(shapes, regions.Names(), cfg.Data.JoinPolicy)
		if err != nil {
			return err
		}

		outDir := renderOutDir
		if outDir == "" {
			outDir = cfg.Chart.OutDir
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return eris.Wrap(err, "create chart dir")
		}

		selected := make(map[string]bool, len(renderSelected))
		for _, r := range renderSelected {
			selected[r] = true
		}

		theme := chart.DefaultTheme().WithSize(cfg.Chart.WidthInches, cfg.Chart.HeightInches)

		xMeans := rank.MeansByVariable(obs, []string{renderVar})[renderVar]
		yMeans := rank.MeansByVariable(obs, []string{renderYVar})[renderYVar]

		meansByRegion := make(map[string]float64, len(xMeans))
		for _, rm := range xMeans {
			meansByRegion[rm.Region] = rm.Mean
		}
		yByRegion := make(map[string]float64, len(yMeans))
		for _, rm := range yMeans {
			yByRegion[rm.Region] = rm.Mean
		}

		var rows []chart.DumbbellRow
		for _, rm := range xMeans {
			to, ok := yByRegion[rm.Region]
			if !ok {
				continue
			}
			rows = append(rows, chart.DumbbellRow{Region: rm.Region, From: rm.Mean, To: to})
		}

		xLabel := catalog.Label(renderVar)
		yLabel := catalog.Label(renderYVar)

		g, _ := errgroup.WithContext(ctx)

		g.Go(func() error {
			p, err := chart.Choropleth(shapes, meansByRegion, selected, xLabel+" by region", theme)
			if err != nil {
				return err
			}
			return chart.SavePNG(p, theme, filepath.Join(outDir, "choropleth_"+renderVar+".png"))
		})

		g.Go(func() error {
			p, err := chart.Scatter(obs, renderVar, renderYVar, xLabel, yLabel, xLabel+" vs "+yLabel, selected, theme)
			if err != nil {
				return err
			}
			return chart.SavePNG(p, theme, filepath.Join(outDir, "scatter_"+renderVar+"_"+renderYVar+".png"))
		})

		g.Go(func() error {
			p, err := chart.Dumbbell(rows, "Regional mean", xLabel+" to "+yLabel, theme)
			if err != nil {
				return err
			}
			return chart.SavePNG(p, theme, filepath.Join(outDir, "dumbbell_"+renderVar+"_"+renderYVar+".png"))
		})

		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "render charts")
		}

		zap.L().Info("charts rendered",
			zap.String("dataset", rec.ID),
			zap.String("dir", outDir),
			zap.String("x", renderVar),
			zap.String("y", renderYVar),
		)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderDatasetID, "dataset", "", "dataset ID (default: most recent import)")
	renderCmd.Flags().StringVar(&renderVar, "var", "stflife", "primary variable")
	renderCmd.Flags().StringVar(&renderYVar, "y-var", "happy", "secondary variable for scatter and dumbbell")
	renderCmd.Flags().StringVar(&renderOutDir, "out", "", "output directory (default from config)")
	renderCmd.Flags().StringSliceVar(&renderSelected, "select", nil, "regions to highlight")
	rootCmd.AddCommand(renderCmd)
}
