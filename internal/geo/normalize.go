package geo

import (
	"regexp"
	"strings"
)

// polygonClauseRe matches one POLYGON((...)) clause, case-insensitive. The
// word boundary keeps it from biting into MULTIPOLYGON, whose triple-paren
// body must reach the parser whole. The lazy body stops at the first double
// closing parenthesis, which is always the clause terminator for both
// single-ring and multi-ring polygons.
var polygonClauseRe = regexp.MustCompile(`(?is)\bPOLYGON\s*\(\(.*?\)\)`)

// ExtractPolygonClauses returns every POLYGON((...)) clause embedded in the
// text, verbatim and in order of appearance.
func ExtractPolygonClauses(text string) []string {
	return polygonClauseRe.FindAllString(text, -1)
}

// Normalize canonicalizes loosely-formatted geofence text for storage.
//
//   - Blank input means "no geofence": ok is false.
//   - Text without any polygon clause passes through trimmed; the storage
//     layer's geometry type is the final validator for such input.
//   - Exactly one clause is stored unwrapped, even when the input carried a
//     GEOMETRYCOLLECTION envelope.
//   - Multiple clauses are re-wrapped into a single GEOMETRYCOLLECTION,
//     order preserved.
//
// Normalize is idempotent: applying it to its own output returns the same
// value.
func Normalize(raw string) (normalized string, ok bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	clauses := ExtractPolygonClauses(trimmed)
	switch len(clauses) {
	case 0:
		return trimmed, true
	case 1:
		return clauses[0], true
	default:
		return "GEOMETRYCOLLECTION(" + strings.Join(clauses, ", ") + ")", true
	}
}
