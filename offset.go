package geoshift

import "math"

// Constants of the published GCJ02 offset model. The semi-major axis and
// first eccentricity squared describe the Krasovsky 1940 ellipsoid; the
// series is centered on 105°E 35°N so its inputs stay small over mainland
// China. None of these values may be tuned.
const (
	krasovskyA  = 6378245.0
	krasovskyEE = 0.00669342162296594323

	seriesCenterLng = 105.0
	seriesCenterLat = 35.0
)

// offsetLat evaluates the latitude correction series at the recentered point
// (x, y). Coefficients are fixed by the published algorithm.
func offsetLat(x, y float64) float64 {
	ret := -100.0 + 2.0*x + 3.0*y + 0.2*y*y + 0.1*x*y + 0.2*math.Sqrt(math.Abs(x))
	ret += (20.0*math.Sin(6.0*x*math.Pi) + 20.0*math.Sin(2.0*x*math.Pi)) * 2.0 / 3.0
	ret += (20.0*math.Sin(y*math.Pi) + 40.0*math.Sin(y/3.0*math.Pi)) * 2.0 / 3.0
	ret += (160.0*math.Sin(y/12.0*math.Pi) + 320.0*math.Sin(y*math.Pi/30.0)) * 2.0 / 3.0
	return ret
}

// offsetLng evaluates the longitude correction series at (x, y).
func offsetLng(x, y float64) float64 {
	ret := 300.0 + x + 2.0*y + 0.1*x*x + 0.1*x*y + 0.1*math.Sqrt(math.Abs(x))
	ret += (20.0*math.Sin(6.0*x*math.Pi) + 20.0*math.Sin(2.0*x*math.Pi)) * 2.0 / 3.0
	ret += (20.0*math.Sin(x*math.Pi) + 40.0*math.Sin(x/3.0*math.Pi)) * 2.0 / 3.0
	ret += (150.0*math.Sin(x/12.0*math.Pi) + 300.0*math.Sin(x/30.0*math.Pi)) * 2.0 / 3.0
	return ret
}

// deltas returns the GCJ02 perturbation for a WGS84 coordinate. The raw
// series output is scaled by the ellipsoid curvature at the point's latitude
// before it becomes a degree offset.
func deltas(c Coordinate) (dLng, dLat float64) {
	x := c.Longitude - seriesCenterLng
	y := c.Latitude - seriesCenterLat
	dLng = offsetLng(x, y)
	dLat = offsetLat(x, y)

	radLat := c.Latitude / 180.0 * math.Pi
	magic := math.Sin(radLat)
	magic = 1 - krasovskyEE*magic*magic
	sqrtMagic := math.Sqrt(magic)

	dLat = (dLat * 180.0) / ((krasovskyA * (1 - krasovskyEE)) / (magic * sqrtMagic) * math.Pi)
	dLng = (dLng * 180.0) / (krasovskyA / sqrtMagic * math.Cos(radLat) * math.Pi)
	return dLng, dLat
}
