package model

// RegionalMean is the arithmetic mean of one variable's non-missing values
// within one region. Derived from the observation set; never persisted
// independently of it.
type RegionalMean struct {
	Region   string  `json:"region"`
	Variable string  `json:"variable"`
	Mean     float64 `json:"mean"`
	N        int     `json:"n"`
}

// VariableStat holds the dispersion of one variable's regional means:
// mean, sample standard deviation, and range, computed across the set of
// per-region means rather than across raw observations.
type VariableStat struct {
	Variable string  `json:"variable"`
	Label    string  `json:"label"`
	Mean     float64 `json:"mean"`
	SD       float64 `json:"sd"`
	Range    float64 `json:"range"`
	CV       float64 `json:"cv"`
	Regions  int     `json:"regions"`
}
