// Package geo implements geofence parsing and containment for customers and
// routes. Geofences travel as WKT text (POLYGON / GEOMETRYCOLLECTION,
// longitude-first coordinates) and are parsed on demand; parsed geometry is
// never cached as its own entity.
package geo

import (
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

// ErrNoPolygon is returned when the text contains no parseable polygon.
var ErrNoPolygon = errors.New("geofence text contains no polygon")

// ParsePolygons extracts every polygon from a geofence text. It accepts a
// bare POLYGON clause, a MULTIPOLYGON, or a GEOMETRYCOLLECTION envelope, and
// tolerates case differences and surrounding whitespace. Free-form text that
// merely embeds polygon clauses is handled by extracting the clauses before
// parsing.
func ParsePolygons(text string) ([]orb.Polygon, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrNoPolygon
	}

	if geom, err := wkt.Unmarshal(strings.ToUpper(trimmed)); err == nil {
		polygons := collectPolygons(geom)
		if len(polygons) > 0 {
			return polygons, nil
		}
	}

	// Lenient path: pull the polygon clauses out of otherwise unparseable text.
	var polygons []orb.Polygon
	for _, clause := range ExtractPolygonClauses(trimmed) {
		geom, err := wkt.Unmarshal(strings.ToUpper(clause))
		if err != nil {
			continue
		}
		polygons = append(polygons, collectPolygons(geom)...)
	}

	if len(polygons) == 0 {
		return nil, errors.Wrapf(ErrNoPolygon, "unparseable geofence %q", truncate(trimmed, 64))
	}

	return polygons, nil
}

// collectPolygons flattens a parsed geometry into its polygons.
func collectPolygons(geom orb.Geometry) []orb.Polygon {
	switch g := geom.(type) {
	case orb.Polygon:
		return []orb.Polygon{g}
	case orb.MultiPolygon:
		return []orb.Polygon(g)
	case orb.Collection:
		var polygons []orb.Polygon
		for _, member := range g {
			polygons = append(polygons, collectPolygons(member)...)
		}

		return polygons
	default:
		return nil
	}
}

// Contains reports whether the point falls inside any of the polygons.
// Containment in a single polygon suffices; boundary points count as inside.
func Contains(polygons []orb.Polygon, point orb.Point) bool {
	for _, polygon := range polygons {
		if planar.PolygonContains(polygon, point) {
			return true
		}
	}

	return false
}

// Centroid returns the arithmetic mean of the ring's vertices. This is a
// coarse placement helper for map markers, not an area-weighted centroid,
// and must not be used for eligibility decisions.
func Centroid(ring orb.Ring) orb.Point {
	vertices := []orb.Point(ring)
	if len(vertices) == 0 {
		return orb.Point{}
	}

	// A closed ring repeats its first vertex; skip the duplicate.
	if len(vertices) > 1 && vertices[0] == vertices[len(vertices)-1] {
		vertices = vertices[:len(vertices)-1]
	}

	var sumLon, sumLat float64
	for _, v := range vertices {
		sumLon += v.Lon()
		sumLat += v.Lat()
	}
	n := float64(len(vertices))

	return orb.Point{sumLon / n, sumLat / n}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	return s[:max] + "..."
}
