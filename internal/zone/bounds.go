package zone

import "github.com/tdurnford/chicken-little-sub001/internal/model"

// Bounds describes the active zone: an axis-aligned rectangle on the
// ground plane (X/Z), centered on Center. Margin shrinks the usable area
// so predators never hug the exact edge. Y is terrain height and is
// never constrained.
type Bounds struct {
	Center model.Vector3
	Size   model.Vector3 // full extents; Size.Y is ignored
	Margin float64
}

// NewBounds creates zone bounds with the given center, full size, and margin.
func NewBounds(center, size model.Vector3, margin float64) Bounds {
	return Bounds{Center: center, Size: size, Margin: margin}
}

// halfX/halfZ return the usable half-extents after the margin is applied.
func (b Bounds) halfX() float64 {
	h := b.Size.X/2 - b.Margin
	if h < 0 {
		return 0
	}
	return h
}

func (b Bounds) halfZ() float64 {
	h := b.Size.Z/2 - b.Margin
	if h < 0 {
		return 0
	}
	return h
}

// Contains reports whether the point lies inside the usable zone area.
// Only X and Z are checked.
func (b Bounds) Contains(p model.Vector3) bool {
	return p.X >= b.Center.X-b.halfX() && p.X <= b.Center.X+b.halfX() &&
		p.Z >= b.Center.Z-b.halfZ() && p.Z <= b.Center.Z+b.halfZ()
}

// Clamp returns the nearest point inside the usable zone area.
// Y passes through unchanged.
func (b Bounds) Clamp(p model.Vector3) model.Vector3 {
	return model.Vector3{
		X: clamp(p.X, b.Center.X-b.halfX(), b.Center.X+b.halfX()),
		Y: p.Y,
		Z: clamp(p.Z, b.Center.Z-b.halfZ(), b.Center.Z+b.halfZ()),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
