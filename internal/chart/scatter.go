package chart

import (
	"github.com/rotisserie/eris"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ess-tools/atlas-cli/internal/model"
)

// Scatter renders observations on two variables, skipping rows where either
// answer is missing. Points from selected regions are drawn larger in the
// highlight color on top of the base layer.
func Scatter(obs []model.Observation, xVar, yVar, xLabel, yLabel, title string, selected map[string]bool, theme Theme) (*plot.Plot, error) {
	var base, hot plotter.XYs
	for _, o := range obs {
		x, okX := o.Value(xVar)
		y, okY := o.Value(yVar)
		if !okX || !okY {
			continue
		}
		pt := plotter.XY{X: x, Y: y}
		if selected[o.Region] {
			hot = append(hot, pt)
		} else {
			base = append(base, pt)
		}
	}
	if len(base)+len(hot) == 0 {
		return nil, eris.Errorf("chart: no observation has both %s and %s", xVar, yVar)
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = theme.TitleSize
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.BackgroundColor = theme.Background
	p.Add(plotter.NewGrid())

	if len(base) > 0 {
		s, err := plotter.NewScatter(base)
		if err != nil {
			return nil, eris.Wrap(err, "chart: base scatter")
		}
		s.GlyphStyle.Color = theme.Base
		s.GlyphStyle.Radius = theme.PointSize
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
	}

	if len(hot) > 0 {
		s, err := plotter.NewScatter(hot)
		if err != nil {
			return nil, eris.Wrap(err, "chart: highlighted scatter")
		}
		s.GlyphStyle.Color = theme.Highlight
		s.GlyphStyle.Radius = theme.PointSize * 3 / 2
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add("selected regions", s)
	}

	return p, nil
}
