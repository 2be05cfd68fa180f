// Package geo loads region geometry from shapefiles and joins it to the
// survey's region names.
package geo

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"go.uber.org/zap"
)

// RegionShape is one region's display name plus its map geometry.
type RegionShape struct {
	Name     string
	Geometry *geom.MultiPolygon
	Centroid geom.Coord
	Bounds   *geom.Bounds
}

// LoadShapefile reads region polygons from a shapefile, taking the display
// name from the given attribute field. Records without a name or without
// polygon geometry are skipped with a warning.
func LoadShapefile(path, nameField string) ([]RegionShape, error) {
	log := zap.L().With(zap.String("component", "geo.shapefile"), zap.String("path", path))

	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "geo: open shapefile")
	}
	defer func() { _ = reader.Close() }()

	nameIdx := fieldIndex(reader, nameField)
	if nameIdx < 0 {
		return nil, eris.Errorf("geo: name field %q not found in shapefile", nameField)
	}

	var shapes []RegionShape
	for reader.Next() {
		_, shape := reader.Shape()
		if shape == nil {
			continue
		}

		name := strings.TrimSpace(reader.Attribute(nameIdx))
		if name == "" {
			log.Warn("skipping record without a region name")
			continue
		}

		poly, ok := shape.(*shp.Polygon)
		if !ok {
			log.Warn("skipping non-polygon record", zap.String("region", name))
			continue
		}

		mp, err := PolygonToGeom(poly)
		if err != nil {
			log.Warn("skipping region with invalid geometry",
				zap.String("region", name),
				zap.Error(err),
			)
			continue
		}

		rs := RegionShape{
			Name:     name,
			Geometry: mp,
			Bounds:   mp.Bounds(),
		}
		if c, err := xy.Centroid(mp); err == nil {
			rs.Centroid = c
		}
		shapes = append(shapes, rs)
	}

	if len(shapes) == 0 {
		return nil, eris.Errorf("geo: no region polygons loaded from %s", path)
	}

	log.Info("region geometry loaded", zap.Int("regions", len(shapes)))
	return shapes, nil
}

// PolygonToGeom converts a shapefile Polygon, whose rings are delimited by
// part offsets into a flat point array, into a go-geom MultiPolygon with
// one polygon per ring.
func PolygonToGeom(p *shp.Polygon) (*geom.MultiPolygon, error) {
	if p.NumParts == 0 || len(p.Points) == 0 {
		return nil, eris.New("geo: polygon has no parts")
	}

	mp := geom.NewMultiPolygon(geom.XY)
	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}
		if end-start < 3 {
			return nil, eris.Errorf("geo: ring %d has %d points", i, end-start)
		}

		ring := make([]geom.Coord, 0, end-start+1)
		for j := start; j < end; j++ {
			ring = append(ring, geom.Coord{p.Points[j].X, p.Points[j].Y})
		}
		// Shapefile rings are not guaranteed closed.
		if !ring[0].Equal(geom.XY, ring[len(ring)-1]) {
			ring = append(ring, ring[0])
		}

		poly, err := geom.NewPolygon(geom.XY).SetCoords([][]geom.Coord{ring})
		if err != nil {
			return nil, eris.Wrapf(err, "geo: build ring %d", i)
		}
		if err := mp.Push(poly); err != nil {
			return nil, eris.Wrapf(err, "geo: push ring %d", i)
		}
	}
	return mp, nil
}

// fieldIndex returns the index of a named field in the shapefile, or -1 if
// not found.
func fieldIndex(reader *shp.Reader, name string) int {
	for i, f := range reader.Fields() {
		if strings.EqualFold(strings.TrimRight(f.String(), "\x00"), name) {
			return i
		}
	}
	return -1
}
