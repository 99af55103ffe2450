package geoshift

import "math"

// xPi is the auxiliary constant of the Baidu polar shift.
const xPi = math.Pi * 3000.0 / 180.0

// Fixed offsets Baidu adds after the polar shift.
const (
	bdLngOffset = 0.0065
	bdLatOffset = 0.006
)

// The inverse iteration stops once both component corrections are at or
// below inverseTolerance. The cap guards against numeric pathologies; the
// offset series varies slowly enough that a handful of rounds converge.
const (
	inverseTolerance = 1e-8
	inverseMaxIter   = 50
)

// Transform converts c from one coordinate system to another WGS84, GCJ02,
// or BD09 frame. Input is validated here once; equal systems return c
// unchanged, and every mixed pair routes through WGS84 as the hub. Points
// outside the mainland envelope come back untouched on any pair.
func Transform(c Coordinate, from, to System) (Coordinate, error) {
	if err := c.validate(); err != nil {
		return Coordinate{}, err
	}
	return transformValidated(c, from, to)
}

// transformValidated is the hub pipeline behind Transform and
// BatchTransform. Callers have already range-checked c.
func transformValidated(c Coordinate, from, to System) (Coordinate, error) {
	if !from.valid() {
		return Coordinate{}, inputErrorf("unsupported source system %s", from)
	}
	if !to.valid() {
		return Coordinate{}, inputErrorf("unsupported target system %s", to)
	}
	if from == to {
		return c, nil
	}
	w, err := toWGS84(c, from)
	if err != nil {
		return Coordinate{}, err
	}
	return fromWGS84(w, to), nil
}

// toWGS84 normalizes c from its source frame into WGS84.
func toWGS84(c Coordinate, from System) (Coordinate, error) {
	switch from {
	case GCJ02:
		return gcj02ToWGS84(c)
	case BD09:
		// Outside the envelope the data was never obfuscated, so the
		// polar shift must not run either.
		if outOfRegion(c) {
			return c, nil
		}
		return gcj02ToWGS84(bd09ToGCJ02(c))
	default:
		return c, nil
	}
}

// fromWGS84 projects a WGS84 coordinate into the target frame.
func fromWGS84(c Coordinate, to System) Coordinate {
	switch to {
	case GCJ02:
		return wgs84ToGCJ02(c)
	case BD09:
		if outOfRegion(c) {
			return c
		}
		return gcj02ToBD09(wgs84ToGCJ02(c))
	default:
		return c
	}
}

// wgs84ToGCJ02 applies the forward obfuscation. Out-of-region points pass
// through bit for bit, with no rounding.
func wgs84ToGCJ02(c Coordinate) Coordinate {
	if outOfRegion(c) {
		return c
	}
	dLng, dLat := deltas(c)
	return Coordinate{
		Longitude: c.Longitude + dLng,
		Latitude:  c.Latitude + dLat,
	}.rounded()
}

// gcj02ToWGS84 inverts the obfuscation by fixed point iteration: feed the
// current guess forward, subtract the miss, repeat until the miss is within
// tolerance on both axes.
func gcj02ToWGS84(c Coordinate) (Coordinate, error) {
	if outOfRegion(c) {
		return c, nil
	}
	wgs := c
	for i := 0; i < inverseMaxIter; i++ {
		candidate := wgs84ToGCJ02(wgs)
		dLng := candidate.Longitude - c.Longitude
		dLat := candidate.Latitude - c.Latitude
		wgs.Longitude -= dLng
		wgs.Latitude -= dLat
		if math.Abs(dLng) <= inverseTolerance && math.Abs(dLat) <= inverseTolerance {
			return wgs.rounded(), nil
		}
	}
	return Coordinate{}, ErrNoConvergence
}

// gcj02ToBD09 applies the Baidu polar shift. The formula itself is defined
// everywhere; region gating happens in the pipeline, not here.
func gcj02ToBD09(c Coordinate) Coordinate {
	x, y := c.Longitude, c.Latitude
	z := math.Sqrt(x*x+y*y) + 0.00002*math.Sin(y*xPi)
	theta := math.Atan2(y, x) + 0.000003*math.Cos(x*xPi)
	return Coordinate{
		Longitude: z*math.Cos(theta) + bdLngOffset,
		Latitude:  z*math.Sin(theta) + bdLatOffset,
	}.rounded()
}

// bd09ToGCJ02 removes the Baidu polar shift. It mirrors gcj02ToBD09 rather
// than inverting it exactly; the round trip error peaks just above a
// microdegree for practical points.
func bd09ToGCJ02(c Coordinate) Coordinate {
	x := c.Longitude - bdLngOffset
	y := c.Latitude - bdLatOffset
	z := math.Sqrt(x*x+y*y) - 0.00002*math.Sin(y*xPi)
	theta := math.Atan2(y, x) - 0.000003*math.Cos(x*xPi)
	return Coordinate{
		Longitude: z * math.Cos(theta),
		Latitude:  z * math.Sin(theta),
	}.rounded()
}
