package chart

import (
	"github.com/rotisserie/eris"
	"gonum.org/v1/plot"
)

// SavePNG writes a rendered plot to disk at the theme's canvas size.
func SavePNG(p *plot.Plot, theme Theme, path string) error {
	if err := p.Save(theme.Width, theme.Height, path); err != nil {
		return eris.Wrapf(err, "chart: save %s", path)
	}
	return nil
}
