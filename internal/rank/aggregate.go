// Package rank decides which survey variables are appropriate for regional
// choropleth display by comparing their between-region dispersion against
// the median dispersion across the candidate set.
package rank

import (
	"sort"

	"github.com/ess-tools/atlas-cli/internal/model"
)

// MeansByVariable computes the per-region mean of each candidate variable
// over non-missing values only. A region with zero non-missing observations
// for a variable contributes no entry for that pair, so an undefined mean is
// signaled by absence rather than coerced to zero. Regions are ordered by
// name within each variable.
func MeansByVariable(obs []model.Observation, vars []string) map[string][]model.RegionalMean {
	type acc struct {
		sum float64
		n   int
	}

	sums := make(map[string]map[string]*acc, len(vars))
	for _, v := range vars {
		sums[v] = make(map[string]*acc)
	}

	for _, o := range obs {
		for _, v := range vars {
			val, ok := o.Value(v)
			if !ok {
				continue
			}
			a := sums[v][o.Region]
			if a == nil {
				a = &acc{}
				sums[v][o.Region] = a
			}
			a.sum += val
			a.n++
		}
	}

	means := make(map[string][]model.RegionalMean, len(vars))
	for _, v := range vars {
		regional := make([]model.RegionalMean, 0, len(sums[v]))
		for region, a := range sums[v] {
			regional = append(regional, model.RegionalMean{
				Region:   region,
				Variable: v,
				Mean:     a.sum / float64(a.n),
				N:        a.n,
			})
		}
		sort.Slice(regional, func(i, j int) bool { return regional[i].Region < regional[j].Region })
		means[v] = regional
	}
	return means
}
