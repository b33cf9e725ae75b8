package drag

import "math"

// MagneticRadius is the pointer-to-cell-center distance, in pixels, under
// which a valid slot is flagged as "near magnetic field". Purely a visual
// affordance for a snapping highlight; it carries no correctness semantics.
const MagneticRadius = 50.0

// Point is a pointer position in pixel coordinates.
type Point struct {
	X float64
	Y float64
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// NearMagnetic reports whether the pointer is within the magnetic radius of
// the candidate cell's center.
func NearMagnetic(pointer, cellCenter Point) bool {
	return Distance(pointer, cellCenter) <= MagneticRadius
}
