// Package survey loads tabular survey exports into observations, resolving
// region codes and cleaning out-of-scale answers.
package survey

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Join policies for unmatched region codes.
const (
	// PolicyStrict treats an unmatched region code as a hard error: the
	// dataset is expected to join completely.
	PolicyStrict = "strict"
	// PolicyLenient drops unmatched rows with a warning: partial coverage
	// is expected for this dataset.
	PolicyLenient = "lenient"
)

// ParseJoinPolicy validates a policy name from config or flags.
func ParseJoinPolicy(s string) (string, error) {
	switch s {
	case PolicyStrict, PolicyLenient:
		return s, nil
	default:
		return "", eris.Errorf("survey: unknown join policy %q (want %s or %s)", s, PolicyStrict, PolicyLenient)
	}
}

// RegionMap resolves region codes to region display names. Every
// observation's code must resolve to exactly one name; how an unresolved
// code is handled is the dataset's join policy, not the map's concern.
type RegionMap struct {
	byCode map[string]string
}

// NewRegionMap builds a RegionMap from a code-to-name table.
func NewRegionMap(codes map[string]string) *RegionMap {
	byCode := make(map[string]string, len(codes))
	for code, name := range codes {
		byCode[code] = name
	}
	return &RegionMap{byCode: byCode}
}

// LoadRegionMap reads a YAML file mapping region codes to display names:
//
//	SI042: Gorenjska
//	SI033: Koroška
func LoadRegionMap(path string) (*RegionMap, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "survey: read region map")
	}

	var codes map[string]string
	if err := yaml.Unmarshal(raw, &codes); err != nil {
		return nil, eris.Wrap(err, "survey: parse region map")
	}
	if len(codes) == 0 {
		return nil, eris.Errorf("survey: region map %s is empty", path)
	}
	return NewRegionMap(codes), nil
}

// Resolve returns the display name for a region code and whether the code
// is known.
func (m *RegionMap) Resolve(code string) (string, bool) {
	name, ok := m.byCode[code]
	return name, ok
}

// Names returns all distinct region display names.
func (m *RegionMap) Names() []string {
	seen := make(map[string]bool, len(m.byCode))
	var names []string
	for _, name := range m.byCode {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
