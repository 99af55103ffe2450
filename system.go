package geoshift

import (
	"fmt"
	"strings"
)

// System identifies one of the supported coordinate reference systems.
type System uint8

const (
	// WGS84 is the unmodified satellite positioning frame used by GPS
	// receivers and by GeoJSON.
	WGS84 System = iota
	// GCJ02 is the Chinese national mapping frame, a deterministic
	// nonlinear obfuscation of WGS84 applied inside mainland China.
	GCJ02
	// BD09 is the Baidu mapping frame, a polar coordinate shift layered on
	// top of GCJ02.
	BD09
)

var systemNames = [...]string{"WGS84", "GCJ02", "BD09"}

func (s System) valid() bool { return s <= BD09 }

func (s System) String() string {
	if !s.valid() {
		return fmt.Sprintf("System(%d)", uint8(s))
	}
	return systemNames[s]
}

// ParseSystem resolves a case-insensitive system tag such as "wgs84" or
// "BD09". Unknown tags are an error.
func ParseSystem(tag string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "wgs84":
		return WGS84, nil
	case "gcj02":
		return GCJ02, nil
	case "bd09":
		return BD09, nil
	}
	return 0, inputErrorf("unsupported coordinate system %q", tag)
}

// MarshalText implements encoding.TextMarshaler.
func (s System) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, inputErrorf("unsupported coordinate system tag %d", uint8(s))
	}
	return []byte(systemNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *System) UnmarshalText(text []byte) error {
	sys, err := ParseSystem(string(text))
	if err != nil {
		return err
	}
	*s = sys
	return nil
}
