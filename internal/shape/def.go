package shape

import (
	"fmt"
	"strings"
)

// Def is the YAML form of a shape description, e.g. in the startup object list of the
// config file:
//
//	type: box
//	size: [1, 2, 1]
//
// Size is interpreted per kind: box [w, h, d]; sphere [radius]; cylinder [radius, height];
// plane [w, d]. Zero entries take the unit defaults. Segments overrides tessellation.
type Def struct {
	Type     string     `yaml:"type"`
	Size     [3]float32 `yaml:"size,omitempty"`
	Segments int        `yaml:"segments,omitempty"`
}

// ParseKind maps a user-facing type name to a Kind. "cube" is accepted for box.
func ParseKind(name string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(name))) {
	case KindBox, "cube":
		return KindBox, nil
	case KindSphere:
		return KindSphere, nil
	case KindCylinder:
		return KindCylinder, nil
	case KindPlane:
		return KindPlane, nil
	}
	return "", fmt.Errorf("unknown shape type %q (use box, sphere, cylinder or plane)", name)
}

// Build returns the geometry described by d.
func Build(d Def) (*Geometry, error) {
	kind, err := ParseKind(d.Type)
	if err != nil {
		return nil, err
	}
	or := func(v, def float32) float32 {
		if v <= 0 {
			return def
		}
		return v
	}
	s := d.Size
	switch kind {
	case KindSphere:
		w, h := DefaultSphereWidthSegments, DefaultSphereHeightSegments
		if d.Segments > 0 {
			w, h = d.Segments, d.Segments
		}
		return Sphere(or(s[0], 0.5), w, h), nil
	case KindCylinder:
		n := DefaultCylinderSegments
		if d.Segments > 0 {
			n = d.Segments
		}
		return Cylinder(or(s[0], 0.5), or(s[1], 1), n), nil
	case KindPlane:
		return Plane(or(s[0], 1), or(s[1], 1)), nil
	default:
		return Box(or(s[0], 1), or(s[1], 1), or(s[2], 1)), nil
	}
}
