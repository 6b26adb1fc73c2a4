package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const square = "POLYGON((0 0, 10 0, 10 10, 0 10, 0 0))"

func TestParsePolygons_BarePolygon(t *testing.T) {
	polygons, err := ParsePolygons(square)

	require.NoError(t, err)
	require.Len(t, polygons, 1)
	require.Len(t, polygons[0], 1)
	assert.Len(t, polygons[0][0], 5)
}

func TestParsePolygons_MultiPolygon(t *testing.T) {
	polygons, err := ParsePolygons("MULTIPOLYGON(((0 0, 1 0, 1 1, 0 1, 0 0)), ((2 2, 3 2, 3 3, 2 3, 2 2)))")

	require.NoError(t, err)
	assert.Len(t, polygons, 2)
}

func TestParsePolygons_GeometryCollection(t *testing.T) {
	polygons, err := ParsePolygons("GEOMETRYCOLLECTION(POLYGON((0 0, 1 0, 1 1, 0 1, 0 0)), POLYGON((2 2, 3 2, 3 3, 2 3, 2 2)))")

	require.NoError(t, err)
	assert.Len(t, polygons, 2)
}

func TestParsePolygons_LowercaseAndWhitespace(t *testing.T) {
	polygons, err := ParsePolygons("  polygon((0 0, 10 0, 10 10, 0 10, 0 0))  ")

	require.NoError(t, err)
	assert.Len(t, polygons, 1)
}

func TestParsePolygons_EmbeddedClausesInFreeText(t *testing.T) {
	polygons, err := ParsePolygons("zona norte: POLYGON((0 0, 1 0, 1 1, 0 1, 0 0)) y POLYGON((2 2, 3 2, 3 3, 2 3, 2 2))")

	require.NoError(t, err)
	assert.Len(t, polygons, 2)
}

func TestParsePolygons_NoPolygon(t *testing.T) {
	for _, text := range []string{"", "   ", "LINESTRING(0 0, 1 1)", "just some text"} {
		_, err := ParsePolygons(text)
		require.ErrorIs(t, err, ErrNoPolygon, "input %q", text)
	}
}

func TestContains_InsideOutsideBoundary(t *testing.T) {
	polygons, err := ParsePolygons(square)
	require.NoError(t, err)

	assert.True(t, Contains(polygons, orb.Point{5, 5}))
	assert.False(t, Contains(polygons, orb.Point{15, 15}))
	assert.True(t, Contains(polygons, orb.Point{0, 5}), "boundary points count as inside")
	assert.True(t, Contains(polygons, orb.Point{0, 0}), "vertices count as inside")
}

func TestContains_AnyPolygonSuffices(t *testing.T) {
	polygons, err := ParsePolygons("MULTIPOLYGON(((0 0, 1 0, 1 1, 0 1, 0 0)), ((2 2, 3 2, 3 3, 2 3, 2 2)))")
	require.NoError(t, err)

	assert.True(t, Contains(polygons, orb.Point{2.5, 2.5}))
	assert.False(t, Contains(polygons, orb.Point{1.5, 1.5}), "point between the polygons is outside")
}

func TestCentroid_ClosedRing(t *testing.T) {
	polygons, err := ParsePolygons(square)
	require.NoError(t, err)

	centroid := Centroid(polygons[0][0])

	assert.InDelta(t, 5, centroid.Lon(), 1e-9)
	assert.InDelta(t, 5, centroid.Lat(), 1e-9)
}

func TestCentroid_EmptyRing(t *testing.T) {
	assert.Equal(t, orb.Point{}, Centroid(orb.Ring{}))
}
