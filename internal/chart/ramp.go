package chart

import (
	"image/color"

	"github.com/rotisserie/eris"
)

// Ramp maps values in [Min, Max] to a discrete sequential palette with
// equal-width bins.
type Ramp struct {
	Min    float64
	Max    float64
	Colors []color.Color
}

// NewRamp builds a ramp over an explicit value range.
func NewRamp(min, max float64, colors []color.Color) (*Ramp, error) {
	if len(colors) == 0 {
		return nil, eris.New("chart: ramp needs at least one color")
	}
	if max < min {
		return nil, eris.Errorf("chart: ramp range inverted (%f > %f)", min, max)
	}
	return &Ramp{Min: min, Max: max, Colors: colors}, nil
}

// NewRampFromValues builds a ramp spanning the observed values.
func NewRampFromValues(values []float64, colors []color.Color) (*Ramp, error) {
	if len(values) == 0 {
		return nil, eris.New("chart: ramp needs at least one value")
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return NewRamp(min, max, colors)
}

// At returns the bin color for v. Values outside the range clamp to the
// first or last bin; a degenerate range uses the last bin.
func (r *Ramp) At(v float64) color.Color {
	if r.Max == r.Min {
		return r.Colors[len(r.Colors)-1]
	}
	frac := (v - r.Min) / (r.Max - r.Min)
	idx := int(frac * float64(len(r.Colors)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(r.Colors) {
		idx = len(r.Colors) - 1
	}
	return r.Colors[idx]
}
