package rank

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ess-tools/atlas-cli/internal/model"
)

// Dispersion computes a VariableStat over a variable's regional means:
// their mean, sample standard deviation (n-1 denominator), and range.
// The second return is false when fewer than two regions have a valid
// mean, in which case the standard deviation is undefined.
func Dispersion(variable, label string, regional []model.RegionalMean) (model.VariableStat, bool) {
	vs := model.VariableStat{
		Variable: variable,
		Label:    label,
		Regions:  len(regional),
	}
	if len(regional) < 2 {
		return vs, false
	}

	values := make([]float64, len(regional))
	for i, rm := range regional {
		values[i] = rm.Mean
	}

	vs.Mean = stat.Mean(values, nil)
	vs.SD = stat.StdDev(values, nil)

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	vs.Range = max - min

	if vs.Mean != 0 {
		vs.CV = vs.SD / vs.Mean
	}
	return vs, true
}

// median returns the conventional median: the middle value for odd n, the
// average of the two middle values for even n. gonum's stat.Quantile
// definitions (empirical and linearly-interpolated CDF) both disagree with
// that convention for even n, so it is computed directly.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
