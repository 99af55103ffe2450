// Package geoshift converts geographic coordinates among the WGS84, GCJ02,
// and BD09 reference systems and measures distances, bearings, and areas on
// the normalized WGS84 frame.
//
// GCJ02 is the obfuscated frame mandated for public maps of mainland China;
// BD09 layers a further polar shift on top of it for Baidu products.
// Transform routes any pair of systems through WGS84 as a hub, applying the
// published forward offset model, its fixed point iterated inverse, and the
// closed form Baidu mapping. Points outside the mainland envelope pass
// through every conversion unchanged, while converted in-region coordinates
// are rounded to 8 decimal digits, about a millimeter of ground precision.
//
// All functions are pure and safe for concurrent use.
package geoshift
