package geo

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Join matches loaded shapes against the survey's region names. Under the
// strict policy every region name must have geometry; under the lenient
// policy unmatched names are logged and omitted. The returned slice is in
// the order of regionNames. The policy values are those of the survey
// package ("strict", "lenient").
func Join(shapes []RegionShape, regionNames []string, policy string) ([]RegionShape, error) {
	log := zap.L().With(zap.String("component", "geo.join"))

	byName := make(map[string]RegionShape, len(shapes))
	for _, s := range shapes {
		byName[normalizeName(s.Name)] = s
	}

	var joined []RegionShape
	for _, name := range regionNames {
		s, ok := byName[normalizeName(name)]
		if !ok {
			if policy == "strict" {
				return nil, eris.Errorf("geo: region %q has no geometry in the shapefile", name)
			}
			log.Warn("region has no geometry, omitting from map", zap.String("region", name))
			continue
		}
		s.Name = name // keep the survey's spelling as the display name
		joined = append(joined, s)
	}

	if len(joined) == 0 {
		return nil, eris.New("geo: no region joined to any geometry")
	}
	return joined, nil
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
