package geoshift

// Bounding envelope of mainland China. Obfuscated map data only exists
// inside it; a point sitting exactly on an edge counts as inside.
const (
	regionMinLng = 72.004
	regionMaxLng = 137.8347
	regionMinLat = 0.8293
	regionMaxLat = 55.8271
)

// outOfRegion reports whether c falls strictly outside the mainland envelope.
// Transforms treat such points as pass-through on every leg.
func outOfRegion(c Coordinate) bool {
	return c.Longitude < regionMinLng || c.Longitude > regionMaxLng ||
		c.Latitude < regionMinLat || c.Latitude > regionMaxLat
}
