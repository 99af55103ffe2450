// Package geojson converts whole GeoJSON geometries, features, and feature
// collections between the coordinate systems supported by geoshift.
//
// GeoJSON is nominally always WGS84, but map data exported from Chinese
// providers routinely carries GCJ02 or BD09 positions in GeoJSON clothing.
// This package walks every position of an orb geometry and runs it through
// geoshift.Transform.
package geojson

import (
	"fmt"

	"github.com/paulmach/orb"
	orbjson "github.com/paulmach/orb/geojson"

	"github.com/evanfang0054/geoshift"
)

// Geometry returns a copy of g with every position converted from one
// system to the other. The conversion fails on the first invalid position.
func Geometry(g orb.Geometry, from, to geoshift.System) (orb.Geometry, error) {
	switch t := g.(type) {
	case nil:
		return nil, nil
	case orb.Point:
		return transformPoint(t, from, to)
	case orb.MultiPoint:
		ps, err := transformPositions(t, from, to)
		if err != nil {
			return nil, err
		}
		return orb.MultiPoint(ps), nil
	case orb.LineString:
		ps, err := transformPositions(t, from, to)
		if err != nil {
			return nil, err
		}
		return orb.LineString(ps), nil
	case orb.MultiLineString:
		out := make(orb.MultiLineString, len(t))
		for i, ls := range t {
			ps, err := transformPositions(ls, from, to)
			if err != nil {
				return nil, err
			}
			out[i] = orb.LineString(ps)
		}
		return out, nil
	case orb.Ring:
		ps, err := transformPositions(t, from, to)
		if err != nil {
			return nil, err
		}
		return orb.Ring(ps), nil
	case orb.Polygon:
		p, err := transformPolygon(t, from, to)
		if err != nil {
			return nil, err
		}
		return p, nil
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(t))
		for i, p := range t {
			tp, err := transformPolygon(p, from, to)
			if err != nil {
				return nil, err
			}
			out[i] = tp
		}
		return out, nil
	case orb.Collection:
		out := make(orb.Collection, len(t))
		for i, member := range t {
			tg, err := Geometry(member, from, to)
			if err != nil {
				return nil, err
			}
			out[i] = tg
		}
		return out, nil
	case orb.Bound:
		lo, err := transformPoint(t.Min, from, to)
		if err != nil {
			return nil, err
		}
		hi, err := transformPoint(t.Max, from, to)
		if err != nil {
			return nil, err
		}
		return orb.Bound{Min: lo, Max: hi}, nil
	}
	return nil, fmt.Errorf("geojson: unsupported geometry type %q", g.GeoJSONType())
}

// Feature converts f's geometry and returns a new feature that shares ID and
// properties with f. Any stale bbox is dropped rather than recomputed.
func Feature(f *orbjson.Feature, from, to geoshift.System) (*orbjson.Feature, error) {
	if f == nil {
		return nil, nil
	}
	g, err := Geometry(f.Geometry, from, to)
	if err != nil {
		return nil, err
	}
	out := *f
	out.Geometry = g
	out.BBox = nil
	return &out, nil
}

// FeatureCollection converts every feature, failing the whole collection on
// the first bad position.
func FeatureCollection(fc *orbjson.FeatureCollection, from, to geoshift.System) (*orbjson.FeatureCollection, error) {
	if fc == nil {
		return nil, nil
	}
	out := orbjson.NewFeatureCollection()
	for i, f := range fc.Features {
		converted, err := Feature(f, from, to)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		out.Append(converted)
	}
	return out, nil
}

func transformPoint(p orb.Point, from, to geoshift.System) (orb.Point, error) {
	c, err := geoshift.Transform(geoshift.FromLngLat(p[0], p[1]), from, to)
	if err != nil {
		return orb.Point{}, err
	}
	return orb.Point{c.Longitude, c.Latitude}, nil
}

func transformPositions(in []orb.Point, from, to geoshift.System) ([]orb.Point, error) {
	out := make([]orb.Point, len(in))
	for i, p := range in {
		tp, err := transformPoint(p, from, to)
		if err != nil {
			return nil, err
		}
		out[i] = tp
	}
	return out, nil
}

func transformPolygon(p orb.Polygon, from, to geoshift.System) (orb.Polygon, error) {
	out := make(orb.Polygon, len(p))
	for i, ring := range p {
		ps, err := transformPositions(ring, from, to)
		if err != nil {
			return nil, err
		}
		out[i] = orb.Ring(ps)
	}
	return out, nil
}
