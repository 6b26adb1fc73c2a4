package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_BlankMeansNoGeofence(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t"} {
		normalized, ok := Normalize(raw)
		assert.False(t, ok)
		assert.Empty(t, normalized)
	}
}

func TestNormalize_SinglePolygonPassesThroughUnwrapped(t *testing.T) {
	clause := "POLYGON((0 0, 0 10, 10 10, 10 0, 0 0))"

	tests := []struct {
		name string
		raw  string
	}{
		{name: "bare clause", raw: clause},
		{name: "surrounding whitespace", raw: "  " + clause + "\n"},
		{name: "wrapped in collection", raw: "GEOMETRYCOLLECTION(" + clause + ")"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized, ok := Normalize(tt.raw)
			assert.True(t, ok)
			assert.Equal(t, clause, normalized)
		})
	}
}

func TestNormalize_MultiplePolygonsAreWrapped(t *testing.T) {
	p1 := "POLYGON((0 0, 0 1, 1 1, 1 0, 0 0))"
	p2 := "POLYGON((5 5, 5 6, 6 6, 6 5, 5 5))"

	normalized, ok := Normalize(p1 + " " + p2)
	assert.True(t, ok)
	assert.Equal(t, "GEOMETRYCOLLECTION("+p1+", "+p2+")", normalized)
}

func TestNormalize_MultiPolygonPassesThroughIntact(t *testing.T) {
	raw := "MULTIPOLYGON(((0 0, 1 0, 1 1, 0 0)), ((2 2, 3 2, 3 3, 2 2)))"

	// No POLYGON clause must be carved out of the MULTIPOLYGON body; the
	// whole geometry passes through and stays parseable.
	normalized, ok := Normalize("  " + raw + "  ")
	assert.True(t, ok)
	assert.Equal(t, raw, normalized)

	polygons, err := ParsePolygons(normalized)
	assert.NoError(t, err)
	assert.Len(t, polygons, 2)
}

func TestNormalize_NoPolygonClausePassesThroughTrimmed(t *testing.T) {
	normalized, ok := Normalize("  not a geometry at all  ")
	assert.True(t, ok)
	assert.Equal(t, "not a geometry at all", normalized)
}

func TestNormalize_IsIdempotent(t *testing.T) {
	inputs := []string{
		"POLYGON((0 0, 0 10, 10 10, 10 0, 0 0))",
		"polygon((0 0, 0 1, 1 1, 0 0)) POLYGON((2 2, 2 3, 3 3, 2 2))",
		"GEOMETRYCOLLECTION(POLYGON((0 0, 0 1, 1 1, 0 0)), POLYGON((2 2, 2 3, 3 3, 2 2)))",
		"MULTIPOLYGON(((0 0, 1 0, 1 1, 0 0)), ((2 2, 3 2, 3 3, 2 2)))",
		"free text without geometry",
		"",
	}

	for _, raw := range inputs {
		once, okOnce := Normalize(raw)
		twice, okTwice := Normalize(once)
		assert.Equal(t, okOnce, okTwice, "ok flag changed for %q", raw)
		assert.Equal(t, once, twice, "normalization not idempotent for %q", raw)
	}
}

func TestNormalize_PreservesClauseOrder(t *testing.T) {
	p1 := "POLYGON((9 9, 9 10, 10 10, 9 9))"
	p2 := "POLYGON((0 0, 0 1, 1 1, 0 0))"

	normalized, ok := Normalize("GEOMETRYCOLLECTION(" + p1 + ", " + p2 + ")")
	assert.True(t, ok)
	assert.Equal(t, "GEOMETRYCOLLECTION("+p1+", "+p2+")", normalized)
}

func TestExtractPolygonClauses_MultiRingPolygon(t *testing.T) {
	clause := "POLYGON((0 0, 0 10, 10 10, 10 0, 0 0), (2 2, 2 4, 4 4, 4 2, 2 2))"

	clauses := ExtractPolygonClauses(clause)
	assert.Len(t, clauses, 1)
	assert.Equal(t, clause, clauses[0])
}
