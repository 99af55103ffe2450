// Spherical geometry over the normalized WGS84 frame.
//
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - */
/* Latitude/longitude spherical geodesy tools   (c) Chris Veness 2002-2019 */
/*                                                             MIT Licence */
/* www.movable-type.co.uk/scripts/latlong.html                             */
/* www.movable-type.co.uk/scripts/geodesy-library.html#latlon-spherical    */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - */

package geoshift

import "math"

// earthRadius is the mean Earth radius in meters of the spherical model
// shared by every geometry operation.
const earthRadius = 6371000.0

const radians = math.Pi / 180
const degrees = 180 / math.Pi

// Distance returns the great-circle distance between a and b in meters.
// Both points are normalized from sys into WGS84 before the math runs, so
// mixing frames never skews a measurement. Identical inputs yield exactly 0.
func Distance(a, b Coordinate, sys System) (float64, error) {
	wa, err := Transform(a, sys, WGS84)
	if err != nil {
		return 0, err
	}
	wb, err := Transform(b, sys, WGS84)
	if err != nil {
		return 0, err
	}
	return haversine(wa, wb), nil
}

// Bearing returns the initial great-circle bearing from a to b in degrees
// clockwise from north, within [0, 360).
func Bearing(a, b Coordinate, sys System) (float64, error) {
	wa, err := Transform(a, sys, WGS84)
	if err != nil {
		return 0, err
	}
	wb, err := Transform(b, sys, WGS84)
	if err != nil {
		return 0, err
	}
	return initialBearing(wa, wb), nil
}

// PointInPolygon reports whether p falls inside the polygon ring by the
// even-odd ray casting rule. The edge from the last vertex back to the first
// is implicit, so the ring needs no explicit closure. Boundary points follow
// the classic algorithm's asymmetric tie-breaking; callers needing exact
// edge semantics should not sit points on edges.
func PointInPolygon(p Coordinate, ring []Coordinate, sys System) (bool, error) {
	wp, err := Transform(p, sys, WGS84)
	if err != nil {
		return false, err
	}
	wring, err := BatchTransform(ring, sys, WGS84)
	if err != nil {
		return false, err
	}
	return rayCast(wp, wring), nil
}

// PolygonArea returns the area of the polygon ring in square meters on the
// sphere. Fewer than 3 vertices yield 0 with no error. Ring simplicity is
// not checked; a self-intersecting ring produces the absolute value of its
// signed spherical integral, which is the caller's problem.
func PolygonArea(ring []Coordinate, sys System) (float64, error) {
	if len(ring) < 3 {
		return 0, nil
	}
	wring, err := BatchTransform(ring, sys, WGS84)
	if err != nil {
		return 0, err
	}
	return sphericalArea(wring), nil
}

// Offset solves the direct problem: the point reached from p by traveling
// distanceMeters along the given initial bearing (degrees clockwise from
// north). The result comes back in sys, with longitude normalized to
// [-180, 180].
func Offset(p Coordinate, distanceMeters, bearingDeg float64, sys System) (Coordinate, error) {
	if math.IsNaN(distanceMeters) || math.IsInf(distanceMeters, 0) || distanceMeters < 0 {
		return Coordinate{}, inputErrorf("distance must be finite and non-negative, got %v", distanceMeters)
	}
	if math.IsNaN(bearingDeg) || math.IsInf(bearingDeg, 0) || bearingDeg < 0 || bearingDeg > 360 {
		return Coordinate{}, inputErrorf("bearing must be finite and within [0, 360], got %v", bearingDeg)
	}
	w, err := Transform(p, sys, WGS84)
	if err != nil {
		return Coordinate{}, err
	}
	return Transform(destination(w, distanceMeters, bearingDeg).rounded(), WGS84, sys)
}

func haversine(a, b Coordinate) float64 {
	// haversine formula
	φ1 := a.Latitude * radians
	φ2 := b.Latitude * radians
	Δφ := (b.Latitude - a.Latitude) * radians
	Δλ := (b.Longitude - a.Longitude) * radians
	sΔφ2 := math.Sin(Δφ / 2)
	sΔλ2 := math.Sin(Δλ / 2)
	haver := sΔφ2*sΔφ2 + math.Cos(φ1)*math.Cos(φ2)*sΔλ2*sΔλ2
	if haver > 1 {
		// rounding pushes near-antipodal pairs just past 1, where Asin NaNs
		haver = 1
	}
	return earthRadius * 2 * math.Asin(math.Sqrt(haver))
}

func initialBearing(a, b Coordinate) float64 {
	// tanθ = sinΔλ⋅cosφ2 / cosφ1⋅sinφ2 − sinφ1⋅cosφ2⋅cosΔλ
	// see mathforum.org/library/drmath/view/55417.html for derivation
	φ1 := a.Latitude * radians
	φ2 := b.Latitude * radians
	Δλ := (b.Longitude - a.Longitude) * radians
	y := math.Sin(Δλ) * math.Cos(φ2)
	x := math.Cos(φ1)*math.Sin(φ2) - math.Sin(φ1)*math.Cos(φ2)*math.Cos(Δλ)
	θ := math.Atan2(y, x)
	return wrap360(θ * degrees)
}

func destination(p Coordinate, meters, bearingDegrees float64) Coordinate {
	// sinφ2 = sinφ1⋅cosδ + cosφ1⋅sinδ⋅cosθ
	// tanΔλ = sinθ⋅sinδ⋅cosφ1 / cosδ−sinφ1⋅sinφ2
	// see mathforum.org/library/drmath/view/52049.html for derivation
	δ := meters / earthRadius
	θ := bearingDegrees * radians
	φ1 := p.Latitude * radians
	λ1 := p.Longitude * radians
	φ2 := math.Asin(math.Sin(φ1)*math.Cos(δ) +
		math.Cos(φ1)*math.Sin(δ)*math.Cos(θ))
	λ2 := λ1 + math.Atan2(math.Sin(θ)*math.Sin(δ)*math.Cos(φ1),
		math.Cos(δ)-math.Sin(φ1)*math.Sin(φ2))
	λ2 = math.Mod(λ2+3*math.Pi, 2*math.Pi) - math.Pi // normalise to -180..+180°
	return Coordinate{Longitude: λ2 * degrees, Latitude: φ2 * degrees}
}

// rayCast is the classic even-odd crossing test, run on raw degree values.
func rayCast(p Coordinate, ring []Coordinate) bool {
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		xi, yi := ring[i].Longitude, ring[i].Latitude
		xj, yj := ring[j].Longitude, ring[j].Latitude
		if ((yi > p.Latitude) != (yj > p.Latitude)) &&
			p.Longitude < (xj-xi)*(p.Latitude-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// sphericalArea sums the spherical excess line integral around the ring and
// returns its absolute value scaled to square meters, so vertex winding
// does not matter.
func sphericalArea(ring []Coordinate) float64 {
	var sum float64
	for i := 0; i < len(ring); i++ {
		p1 := ring[i]
		p2 := ring[(i+1)%len(ring)]
		λ1 := p1.Longitude * radians
		λ2 := p2.Longitude * radians
		φ1 := p1.Latitude * radians
		φ2 := p2.Latitude * radians
		sum += (λ2 - λ1) * (2 + math.Sin(φ1) + math.Sin(φ2))
	}
	return math.Abs(sum * earthRadius * earthRadius / 2)
}

func wrap360(degs float64) float64 {
	degs = math.Mod(degs, 360)
	if degs < 0 {
		degs += 360
	}
	if degs == 360 {
		// adding 360 to a tiny negative rounds all the way back up
		degs = 0
	}
	return degs
}
