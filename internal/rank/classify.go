package rank

import (
	"fmt"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/ess-tools/atlas-cli/internal/model"
)

// Classification outcomes.
const (
	OutcomeAppropriate      = "appropriate"
	OutcomeNotAppropriate   = "not_appropriate"
	OutcomeInsufficientData = "insufficient_data"
)

// Report is one ranked entry of the appropriateness table.
type Report struct {
	Variable string  `json:"variable"`
	Label    string  `json:"label"`
	Mean     float64 `json:"mean"`
	SD       float64 `json:"sd"`
	Range    float64 `json:"range"`
	CV       float64 `json:"cv"`
	Regions  int     `json:"regions"`
	Outcome  string  `json:"outcome"`
	Reason   string  `json:"reason"`
}

// Appropriate reports whether the variable was classified as suitable for
// choropleth display.
func (r Report) Appropriate() bool {
	return r.Outcome == OutcomeAppropriate
}

// Result is a full ranking run: the reports sorted descending by
// between-region standard deviation (insufficient-data entries last) and
// the median threshold they were classified against.
type Result struct {
	Reports   []Report `json:"reports"`
	Threshold float64  `json:"threshold"`
}

// Rank aggregates regional means for each candidate variable, computes the
// dispersion of those means, and classifies each variable against the
// median standard deviation across the candidate set. The threshold is
// relative to exactly the candidate set passed in, so it must be recomputed
// whenever that set changes. The comparison is inclusive: sd equal to the
// threshold classifies as appropriate.
func Rank(obs []model.Observation, catalog *model.Catalog, vars []string) (Result, error) {
	if len(vars) == 0 {
		return Result{}, eris.New("rank: no candidate variables")
	}

	means := MeansByVariable(obs, vars)

	stats := make([]model.VariableStat, 0, len(vars))
	defined := make(map[string]bool, len(vars))
	var sds []float64
	for _, v := range vars {
		vs, ok := Dispersion(v, catalog.Label(v), means[v])
		stats = append(stats, vs)
		if ok {
			defined[v] = true
			sds = append(sds, vs.SD)
		}
	}

	if len(sds) == 0 {
		return Result{}, eris.New("rank: no candidate variable has at least two regions with a valid mean")
	}
	threshold := median(sds)

	reports := make([]Report, 0, len(stats))
	for _, vs := range stats {
		r := Report{
			Variable: vs.Variable,
			Label:    vs.Label,
			Mean:     vs.Mean,
			SD:       vs.SD,
			Range:    vs.Range,
			CV:       vs.CV,
			Regions:  vs.Regions,
		}
		switch {
		case !defined[vs.Variable]:
			r.Outcome = OutcomeInsufficientData
			r.Reason = fmt.Sprintf("only %d region(s) with a valid mean; between-region dispersion is undefined", vs.Regions)
		case vs.SD >= threshold:
			r.Outcome = OutcomeAppropriate
			r.Reason = fmt.Sprintf("between-region sd %.3f is at or above the median %.3f across candidates; regional contrasts will be visible as map fills", vs.SD, threshold)
		default:
			r.Outcome = OutcomeNotAppropriate
			r.Reason = fmt.Sprintf("between-region sd %.3f is below the median %.3f across candidates; regional means are too uniform for a choropleth", vs.SD, threshold)
		}
		reports = append(reports, r)
	}

	sort.SliceStable(reports, func(i, j int) bool {
		di, dj := reports[i].Outcome != OutcomeInsufficientData, reports[j].Outcome != OutcomeInsufficientData
		if di != dj {
			return di
		}
		return reports[i].SD > reports[j].SD
	})

	return Result{Reports: reports, Threshold: threshold}, nil
}
