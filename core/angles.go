package core

import "math"

// All angular wrap-around arithmetic in the engine goes through the helpers
// in this file. Azimuth, hour angle, and sidereal time all live on circles;
// ad hoc modulo operations scattered through the math are where the subtle
// bugs hide (least-squares averaging across the 0°/360° seam in particular).

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float64) float64 { return deg * math.Pi / 180 }

// Rad2Deg converts radians to degrees.
func Rad2Deg(rad float64) float64 { return rad * 180 / math.Pi }

// Wrap360 normalizes an angle in degrees into [0, 360).
func Wrap360(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// Wrap180 normalizes an angle in degrees into [-180, 180). Use it for
// angular differences: a difference near ±360 collapses to a small signed
// correction instead of a spurious full turn.
func Wrap180(deg float64) float64 {
	d := Wrap360(deg)
	if d >= 180 {
		d -= 360
	}
	return d
}

// WrapHours24 normalizes a time angle in hours into [0, 24).
func WrapHours24(hours float64) float64 {
	h := math.Mod(hours, 24)
	if h < 0 {
		h += 24
	}
	return h
}

// HoursToDeg converts a time angle in hours to degrees (1h = 15°).
func HoursToDeg(hours float64) float64 { return hours * 15 }

// DegToHours converts an angle in degrees to hours.
func DegToHours(deg float64) float64 { return deg / 15 }

// clamp1 clips a value into [-1, 1] before an inverse trig call, absorbing
// floating-point overshoot at the domain edges.
func clamp1(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// Vec3 is a direction vector on the unit sphere (or any Cartesian vector
// used by the spherical geometry helpers).
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the Euclidean norm of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// UnitFromAltAz returns the unit direction vector for a horizontal position.
// X points at the azimuth reference on the horizon, Z at the zenith.
func UnitFromAltAz(altDeg, azDeg float64) Vec3 {
	alt := Deg2Rad(altDeg)
	az := Deg2Rad(azDeg)
	return Vec3{
		X: math.Cos(alt) * math.Cos(az),
		Y: math.Cos(alt) * math.Sin(az),
		Z: math.Sin(alt),
	}
}

// SeparationDeg returns the angular separation in degrees between two
// horizontal sky positions.
func SeparationDeg(alt1, az1, alt2, az2 float64) float64 {
	a1 := Deg2Rad(alt1)
	a2 := Deg2Rad(alt2)
	cosSep := math.Cos(a1)*math.Cos(a2)*math.Cos(Deg2Rad(az1-az2)) +
		math.Sin(a1)*math.Sin(a2)
	return Rad2Deg(math.Acos(clamp1(cosSep)))
}

// TriangleArea returns the area of the planar triangle spanned by three unit
// direction vectors. A large area means the directions are well spread on
// the sky, which conditions a multi-star fit; collinear or coincident
// directions give an area near zero.
func TriangleArea(a, b, c Vec3) float64 {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	return 0.5 * e1.Cross(e2).Norm()
}
