// Package chart renders the atlas charts: choropleth map, scatterplot, and
// dumbbell comparison. All renderers take an explicit Theme so palette and
// sizing are declared once instead of per chart.
package chart

import (
	"image/color"

	"gonum.org/v1/plot/vg"
)

// Theme is the shared chart configuration.
type Theme struct {
	Ramp       []color.Color // sequential fill palette, light to dark
	Highlight  color.Color   // selected-region outline and points
	Missing    color.Color   // regions without a valid mean
	Base       color.Color   // unselected scatter points, dumbbell stems
	Accent     color.Color   // second dumbbell endpoint
	TitleSize  vg.Length
	LabelSize  vg.Length
	LineWidth  vg.Length
	PointSize  vg.Length
	Width      vg.Length
	Height     vg.Length
	Background color.Color
}

// DefaultTheme returns the atlas house style: a five-step blue ramp with an
// orange highlight, on 12x8 inch canvases.
func DefaultTheme() Theme {
	return Theme{
		Ramp: []color.Color{
			color.RGBA{R: 239, G: 243, B: 255, A: 255},
			color.RGBA{R: 189, G: 215, B: 231, A: 255},
			color.RGBA{R: 107, G: 174, B: 214, A: 255},
			color.RGBA{R: 49, G: 130, B: 189, A: 255},
			color.RGBA{R: 8, G: 81, B: 156, A: 255},
		},
		Highlight:  color.RGBA{R: 230, G: 159, B: 0, A: 255},
		Missing:    color.RGBA{R: 200, G: 200, B: 200, A: 255},
		Base:       color.RGBA{R: 0, G: 114, B: 178, A: 255},
		Accent:     color.RGBA{R: 213, G: 94, B: 0, A: 255},
		TitleSize:  vg.Points(16),
		LabelSize:  vg.Points(10),
		LineWidth:  vg.Points(2),
		PointSize:  vg.Points(4),
		Width:      12 * vg.Inch,
		Height:     8 * vg.Inch,
		Background: color.White,
	}
}

// WithSize returns a copy of the theme with the canvas size in inches.
func (t Theme) WithSize(widthInches, heightInches float64) Theme {
	t.Width = vg.Length(widthInches) * vg.Inch
	t.Height = vg.Length(heightInches) * vg.Inch
	return t
}
