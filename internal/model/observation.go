// Package model defines the core data types shared across the atlas pipeline.
package model

// Observation is one survey respondent row. Values holds the numeric answer
// per variable name; a variable absent from the map is a missing answer.
// Observations are immutable once loaded.
type Observation struct {
	ID         int                `json:"id"`
	RegionCode string             `json:"region_code"`
	Region     string             `json:"region"`
	Values     map[string]float64 `json:"values"`
}

// Value returns the respondent's answer for the named variable and whether
// it is present.
func (o Observation) Value(name string) (float64, bool) {
	v, ok := o.Values[name]
	return v, ok
}

// FilterByRegion returns the observations whose resolved region name is in
// the given set, preserving the original row order. A nil or empty set
// returns obs unchanged.
func FilterByRegion(obs []Observation, regions map[string]bool) []Observation {
	if len(regions) == 0 {
		return obs
	}
	var out []Observation
	for _, o := range obs {
		if regions[o.Region] {
			out = append(out, o)
		}
	}
	return out
}
