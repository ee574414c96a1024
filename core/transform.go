package core

import (
	"math"
	"time"

	"github.com/signalsfoundry/altaz-pointing/model"
)

// AzimuthConvention fixes the azimuth reference direction and sense. The
// source material left this unresolved, so it is a configuration knob rather
// than a hard-coded choice.
type AzimuthConvention int

const (
	// AzimuthNorthClockwise: 0° = North, 90° = East. The common convention
	// for alt/az mounts and the package default.
	AzimuthNorthClockwise AzimuthConvention = iota
	// AzimuthSouthClockwise: 0° = South, 90° = West. The classical
	// astronomical convention.
	AzimuthSouthClockwise
)

// Transform converts sky positions between the equatorial and horizontal
// frames for a fixed azimuth convention. The zero value uses
// AzimuthNorthClockwise. Transforms are pure functions of their inputs and
// are safe for concurrent use.
type Transform struct {
	Convention AzimuthConvention
}

// ToHorizontal converts an equatorial position to the horizontal frame for
// the given observer and instant.
//
// The spherical triangle is solved through the local direction vector
// (north, east, up), and azimuth comes from atan2 of the two horizontal
// components, so the quadrant is always correct and there is no division
// that degenerates near the zenith. At the exact zenith azimuth is
// undefined; the transform returns 0° there.
func (tr Transform) ToHorizontal(eq model.EquatorialCoordinate, loc model.GeographicLocation, t time.Time) (model.HorizontalCoordinate, error) {
	lst, err := LocalSiderealTime(t, loc)
	if err != nil {
		return model.HorizontalCoordinate{}, err
	}

	ha := Deg2Rad(HoursToDeg(WrapHours24(lst - eq.RAHours)))
	dec := Deg2Rad(eq.DecDeg)
	lat := Deg2Rad(loc.LatitudeDeg)

	sinDec, cosDec := math.Sincos(dec)
	sinLat, cosLat := math.Sincos(lat)
	sinHA, cosHA := math.Sincos(ha)

	// Local direction vector of the object.
	north := sinDec*cosLat - cosDec*sinLat*cosHA
	east := -cosDec * sinHA
	up := sinDec*sinLat + cosDec*cosLat*cosHA

	alt := Rad2Deg(math.Asin(clamp1(up)))
	az := Wrap360(Rad2Deg(math.Atan2(east, north)))

	return model.HorizontalCoordinate{
		AltDeg: alt,
		AzDeg:  tr.fromNorthClockwise(az),
	}, nil
}

// ToEquatorial converts a horizontal position back to the equatorial frame
// for the given observer and instant. It is the exact inverse of
// ToHorizontal: the round trip reproduces the input within floating-point
// tolerance.
func (tr Transform) ToEquatorial(hc model.HorizontalCoordinate, loc model.GeographicLocation, t time.Time) (model.EquatorialCoordinate, error) {
	lst, err := LocalSiderealTime(t, loc)
	if err != nil {
		return model.EquatorialCoordinate{}, err
	}

	alt := Deg2Rad(hc.AltDeg)
	az := Deg2Rad(tr.toNorthClockwise(hc.AzDeg))
	lat := Deg2Rad(loc.LatitudeDeg)

	sinAlt, cosAlt := math.Sincos(alt)
	sinLat, cosLat := math.Sincos(lat)
	sinAz, cosAz := math.Sincos(az)

	north := cosAlt * cosAz
	east := cosAlt * sinAz

	sinDec := sinAlt*sinLat + north*cosLat
	dec := math.Asin(clamp1(sinDec))

	// cos(dec)·sin(HA) = -east, cos(dec)·cos(HA) = sinAlt·cosLat - north·sinLat.
	// atan2 of the two stays finite at the celestial poles where cos(dec) -> 0.
	ha := math.Atan2(-east, sinAlt*cosLat-north*sinLat)

	ra := WrapHours24(lst - DegToHours(Rad2Deg(ha)))
	return model.EquatorialCoordinate{
		RAHours: ra,
		DecDeg:  Rad2Deg(dec),
	}, nil
}

// fromNorthClockwise maps an azimuth computed in the internal convention
// (North, clockwise) to the configured one.
func (tr Transform) fromNorthClockwise(az float64) float64 {
	if tr.Convention == AzimuthSouthClockwise {
		return Wrap360(az - 180)
	}
	return az
}

// toNorthClockwise maps a caller-supplied azimuth in the configured
// convention back to the internal one.
func (tr Transform) toNorthClockwise(az float64) float64 {
	if tr.Convention == AzimuthSouthClockwise {
		return Wrap360(az + 180)
	}
	return az
}

// ToHorizontal converts with the default North-referenced, clockwise
// azimuth convention.
func ToHorizontal(eq model.EquatorialCoordinate, loc model.GeographicLocation, t time.Time) (model.HorizontalCoordinate, error) {
	return Transform{}.ToHorizontal(eq, loc, t)
}

// ToEquatorial converts with the default North-referenced, clockwise
// azimuth convention.
func ToEquatorial(hc model.HorizontalCoordinate, loc model.GeographicLocation, t time.Time) (model.EquatorialCoordinate, error) {
	return Transform{}.ToEquatorial(hc, loc, t)
}
