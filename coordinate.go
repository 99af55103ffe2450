package geoshift

import (
	"bytes"
	"math"

	jsoniter "github.com/json-iterator/go"
)

// Coordinate is a geographic position in decimal degrees. Longitude comes
// first throughout this package, matching GeoJSON position order. The zero
// value is the valid point at 0°E 0°N.
type Coordinate struct {
	Longitude float64
	Latitude  float64
}

// FromLngLat builds a Coordinate from a longitude, latitude pair in degrees.
func FromLngLat(lng, lat float64) Coordinate {
	return Coordinate{Longitude: lng, Latitude: lat}
}

// FromTuple builds a Coordinate from a [longitude, latitude] slice. Any other
// length is an error.
func FromTuple(tuple []float64) (Coordinate, error) {
	if len(tuple) != 2 {
		return Coordinate{}, inputErrorf("coordinate tuple must be [longitude, latitude], got %d values", len(tuple))
	}
	return Coordinate{Longitude: tuple[0], Latitude: tuple[1]}, nil
}

// Tuple returns the position as a [longitude, latitude] array.
func (c Coordinate) Tuple() [2]float64 {
	return [2]float64{c.Longitude, c.Latitude}
}

// validate reports the first finiteness or range violation. Operations call
// it once on entry; every internal stage assumes validated input.
func (c Coordinate) validate() error {
	if math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) {
		return inputErrorf("longitude must be finite, got %v", c.Longitude)
	}
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) {
		return inputErrorf("latitude must be finite, got %v", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return inputErrorf("longitude %v out of range [-180, 180]", c.Longitude)
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return inputErrorf("latitude %v out of range [-90, 90]", c.Latitude)
	}
	return nil
}

// round8 clamps v to 8 decimal digits, the precision contract of every
// transform stage that actually moved the point. 8 digits is roughly a
// millimeter on the ground.
func round8(v float64) float64 {
	return math.Round(v*1e8) / 1e8
}

func (c Coordinate) rounded() Coordinate {
	return Coordinate{Longitude: round8(c.Longitude), Latitude: round8(c.Latitude)}
}

// coordinateJSON covers both accepted object spellings.
type coordinateJSON struct {
	Lng       *float64 `json:"lng"`
	Lat       *float64 `json:"lat"`
	Longitude *float64 `json:"longitude"`
	Latitude  *float64 `json:"latitude"`
}

// UnmarshalJSON accepts a [lng, lat] tuple, a {"lng", "lat"} object, or a
// {"longitude", "latitude"} object. Only the shape is checked here; range
// validation happens when the coordinate reaches an operation.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var tuple []float64
		if err := jsoniter.Unmarshal(trimmed, &tuple); err != nil {
			return inputErrorf("malformed coordinate tuple: %v", err)
		}
		parsed, err := FromTuple(tuple)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}
	var obj coordinateJSON
	if err := jsoniter.Unmarshal(trimmed, &obj); err != nil {
		return inputErrorf("malformed coordinate object: %v", err)
	}
	lng := obj.Longitude
	if lng == nil {
		lng = obj.Lng
	}
	lat := obj.Latitude
	if lat == nil {
		lat = obj.Lat
	}
	if lng == nil || lat == nil {
		return inputErrorf("incomplete coordinate: longitude/lng and latitude/lat are both required")
	}
	*c = Coordinate{Longitude: *lng, Latitude: *lat}
	return nil
}

// MarshalJSON always emits the canonical long-form object, regardless of the
// shape the coordinate was parsed from.
func (c Coordinate) MarshalJSON() ([]byte, error) {
	type canonical struct {
		Longitude float64 `json:"longitude"`
		Latitude  float64 `json:"latitude"`
	}
	return jsoniter.Marshal(canonical{Longitude: c.Longitude, Latitude: c.Latitude})
}
