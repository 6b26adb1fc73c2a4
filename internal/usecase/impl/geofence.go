package impl

import (
	"rutero/internal/domain/errors"
	"rutero/internal/geo"
)

// normalizeGeofence canonicalizes a geofence text for storage. Blank input
// clears the geofence; anything else must parse to at least one polygon.
func normalizeGeofence(raw string) (string, error) {
	normalized, ok := geo.Normalize(raw)
	if !ok {
		return "", nil
	}

	if _, err := geo.ParsePolygons(normalized); err != nil {
		return "", errors.ErrInvalidGeofence.WrapMessage(err.Error())
	}

	return normalized, nil
}
