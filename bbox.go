package geoshift

import (
	"fmt"
	"math"
)

// BoundingBox is the axis-aligned envelope of a point set. Latitude and
// longitude extremes are tracked independently; a set straddling the ±180°
// meridian therefore gets the wide box, there is no date line unwrapping.
type BoundingBox struct {
	MinLng float64
	MinLat float64
	MaxLng float64
	MaxLat float64
}

// NewBoundingBox folds points into their envelope. An empty set has no
// envelope and is an error.
func NewBoundingBox(points []Coordinate) (BoundingBox, error) {
	if len(points) == 0 {
		return BoundingBox{}, inputErrorf("cannot build a bounding box from an empty point set")
	}
	for i, p := range points {
		if err := p.validate(); err != nil {
			return BoundingBox{}, fmt.Errorf("bounding box: point %d: %w", i, err)
		}
	}
	box := BoundingBox{
		MinLng: points[0].Longitude,
		MinLat: points[0].Latitude,
		MaxLng: points[0].Longitude,
		MaxLat: points[0].Latitude,
	}
	for _, p := range points[1:] {
		box.MinLng = math.Min(box.MinLng, p.Longitude)
		box.MinLat = math.Min(box.MinLat, p.Latitude)
		box.MaxLng = math.Max(box.MaxLng, p.Longitude)
		box.MaxLat = math.Max(box.MaxLat, p.Latitude)
	}
	return box, nil
}

// Contains reports whether c falls inside the box, edges included.
func (b BoundingBox) Contains(c Coordinate) bool {
	return c.Longitude >= b.MinLng && c.Longitude <= b.MaxLng &&
		c.Latitude >= b.MinLat && c.Latitude <= b.MaxLat
}

// Center returns the box midpoint.
func (b BoundingBox) Center() Coordinate {
	return Coordinate{
		Longitude: (b.MinLng + b.MaxLng) / 2,
		Latitude:  (b.MinLat + b.MaxLat) / 2,
	}
}
