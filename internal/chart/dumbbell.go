package chart

import (
	"github.com/rotisserie/eris"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
)

// DumbbellRow is one region's pair of values to compare, e.g. the regional
// mean in two survey rounds.
type DumbbellRow struct {
	Region string
	From   float64
	To     float64
}

// Dumbbell renders one horizontal from-to segment per region with a glyph
// at each endpoint, regions on the Y axis.
func Dumbbell(rows []DumbbellRow, xLabel, title string, theme Theme) (*plot.Plot, error) {
	if len(rows) == 0 {
		return nil, eris.New("chart: no dumbbell rows")
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = theme.TitleSize
	p.X.Label.Text = xLabel
	p.BackgroundColor = theme.Background
	p.Add(plotter.NewGrid())

	froms := make(plotter.XYs, len(rows))
	tos := make(plotter.XYs, len(rows))
	ticks := make([]plot.Tick, len(rows))

	for i, row := range rows {
		y := float64(len(rows) - i) // first row on top
		froms[i] = plotter.XY{X: row.From, Y: y}
		tos[i] = plotter.XY{X: row.To, Y: y}
		ticks[i] = plot.Tick{Value: y, Label: row.Region}

		seg, err := plotter.NewLine(plotter.XYs{froms[i], tos[i]})
		if err != nil {
			return nil, eris.Wrapf(err, "chart: segment for %s", row.Region)
		}
		seg.Color = theme.Base
		seg.Width = theme.LineWidth / 2
		p.Add(seg)
	}

	fromGlyphs, err := plotter.NewScatter(froms)
	if err != nil {
		return nil, eris.Wrap(err, "chart: from endpoints")
	}
	fromGlyphs.GlyphStyle.Color = theme.Base
	fromGlyphs.GlyphStyle.Radius = theme.PointSize
	fromGlyphs.GlyphStyle.Shape = draw.CircleGlyph{}

	toGlyphs, err := plotter.NewScatter(tos)
	if err != nil {
		return nil, eris.Wrap(err, "chart: to endpoints")
	}
	toGlyphs.GlyphStyle.Color = theme.Accent
	toGlyphs.GlyphStyle.Radius = theme.PointSize
	toGlyphs.GlyphStyle.Shape = draw.CircleGlyph{}

	p.Add(fromGlyphs, toGlyphs)
	p.Legend.Add("from", fromGlyphs)
	p.Legend.Add("to", toGlyphs)

	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Min = 0
	p.Y.Max = float64(len(rows)) + 1

	return p, nil
}
