package chart

import (
	"fmt"

	"github.com/rotisserie/eris"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/ess-tools/atlas-cli/internal/geo"
)

// Choropleth renders region polygons filled by the per-region mean of the
// active variable. Regions without a valid mean get the theme's missing
// fill; selected regions are outlined in the highlight color. Region names
// are drawn at polygon centroids.
func Choropleth(shapes []geo.RegionShape, means map[string]float64, selected map[string]bool, title string, theme Theme) (*plot.Plot, error) {
	if len(shapes) == 0 {
		return nil, eris.New("chart: no region geometry to draw")
	}

	var values []float64
	for _, s := range shapes {
		if m, ok := means[s.Name]; ok {
			values = append(values, m)
		}
	}
	if len(values) == 0 {
		return nil, eris.New("chart: no region has a valid mean")
	}
	ramp, err := NewRampFromValues(values, theme.Ramp)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = theme.TitleSize
	p.BackgroundColor = theme.Background
	p.HideAxes()

	labelXYs := make(plotter.XYs, 0, len(shapes))
	labels := make([]string, 0, len(shapes))

	for _, s := range shapes {
		for i := 0; i < s.Geometry.NumPolygons(); i++ {
			ring := s.Geometry.Polygon(i).LinearRing(0)
			xys := make(plotter.XYs, ring.NumCoords())
			for j := 0; j < ring.NumCoords(); j++ {
				c := ring.Coord(j)
				xys[j].X = c[0]
				xys[j].Y = c[1]
			}

			poly, err := plotter.NewPolygon(xys)
			if err != nil {
				return nil, eris.Wrapf(err, "chart: polygon for %s", s.Name)
			}
			if m, ok := means[s.Name]; ok {
				poly.Color = ramp.At(m)
			} else {
				poly.Color = theme.Missing
			}
			poly.LineStyle.Width = theme.LineWidth / 4
			if selected[s.Name] {
				poly.LineStyle.Color = theme.Highlight
				poly.LineStyle.Width = theme.LineWidth
			}
			p.Add(poly)
		}

		if len(s.Centroid) >= 2 {
			labelXYs = append(labelXYs, plotter.XY{X: s.Centroid[0], Y: s.Centroid[1]})
			if m, ok := means[s.Name]; ok {
				labels = append(labels, fmt.Sprintf("%s\n%.2f", s.Name, m))
			} else {
				labels = append(labels, fmt.Sprintf("%s\nn/a", s.Name))
			}
		}
	}

	regionLabels, err := plotter.NewLabels(plotter.XYLabels{XYs: labelXYs, Labels: labels})
	if err != nil {
		return nil, eris.Wrap(err, "chart: region labels")
	}
	for i := range regionLabels.TextStyle {
		regionLabels.TextStyle[i].Font.Size = theme.LabelSize
	}
	p.Add(regionLabels)

	return p, nil
}
