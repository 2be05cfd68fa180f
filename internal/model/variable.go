package model

// Variable describes one numeric survey item on a bounded ordinal scale.
// Answers outside [Min, Max] are treated as missing (ESS refusal and
// don't-know codes such as 77, 88, 99 fall outside every declared scale).
type Variable struct {
	Name  string  `json:"name"`
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// InBounds reports whether v is a valid answer on the variable's scale.
func (v Variable) InBounds(val float64) bool {
	return val >= v.Min && val <= v.Max
}

// Catalog is an indexed collection of survey variables.
type Catalog struct {
	Variables []Variable
	byName    map[string]*Variable
}

// NewCatalog creates a Catalog with indexed lookups.
func NewCatalog(vars []Variable) *Catalog {
	c := &Catalog{
		Variables: vars,
		byName:    make(map[string]*Variable, len(vars)),
	}
	for i := range c.Variables {
		v := &c.Variables[i]
		c.byName[v.Name] = v
	}
	return c
}

// ByName returns the variable for the given name, or nil if not found.
func (c *Catalog) ByName(name string) *Variable {
	return c.byName[name]
}

// Label returns the human-readable label for a variable name, falling back
// to the name itself for unknown variables.
func (c *Catalog) Label(name string) string {
	if v := c.byName[name]; v != nil {
		return v.Label
	}
	return name
}

// Names returns the catalog's variable names in declaration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Variables))
	for i, v := range c.Variables {
		names[i] = v.Name
	}
	return names
}

// DefaultCatalog returns the ESS variables the atlas knows out of the box.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Variable{
		{Name: "stflife", Label: "Life satisfaction", Min: 0, Max: 10},
		{Name: "happy", Label: "Happiness", Min: 0, Max: 10},
		{Name: "ppltrst", Label: "Most people can be trusted", Min: 0, Max: 10},
		{Name: "trstlgl", Label: "Trust in the legal system", Min: 0, Max: 10},
		{Name: "stfeco", Label: "Satisfaction with the economy", Min: 0, Max: 10},
		{Name: "sclmeet", Label: "Frequency of social meetings", Min: 1, Max: 7},
		{Name: "health", Label: "Subjective general health", Min: 1, Max: 5},
		{Name: "imprich", Label: "Important to be rich", Min: 1, Max: 6},
		{Name: "impsafe", Label: "Important to live in safe surroundings", Min: 1, Max: 6},
		{Name: "impdiff", Label: "Important to try new and different things", Min: 1, Max: 6},
		{Name: "ipgdtim", Label: "Important to have a good time", Min: 1, Max: 6},
	})
}
