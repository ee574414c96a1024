// Package track computes observer look angles for TLE-derived satellite
// targets, so a star-aligned mount can follow a satellite pass with the same
// pointing model.
package track

import (
	"errors"
	"math"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/signalsfoundry/altaz-pointing/core"
	"github.com/signalsfoundry/altaz-pointing/model"
)

// ErrInvalidTLE indicates the two-line element set could not be parsed into
// a propagatable orbit.
var ErrInvalidTLE = errors.New("invalid TLE")

// WGS-84 ellipsoid parameters, used to place the observer in ECEF.
const (
	wgs84A  = 6378137.0             // semi-major axis (metres)
	wgs84F  = 1.0 / 298.257223563   // flattening
	wgs84E2 = wgs84F * (2 - wgs84F) // first eccentricity squared
)

// SatelliteTarget is a TLE-derived orbiting object. Propagation runs on
// every query; nothing is cached, so a target is safe for concurrent use.
type SatelliteTarget struct {
	name string
	sat  satellite.Satellite
}

// NewSatelliteTarget parses a TLE into a propagatable target.
func NewSatelliteTarget(name, line1, line2 string) (*SatelliteTarget, error) {
	if len(line1) < 69 || len(line2) < 69 {
		return nil, ErrInvalidTLE
	}
	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS72)
	return &SatelliteTarget{name: name, sat: sat}, nil
}

// Name returns the target's display name.
func (t *SatelliteTarget) Name() string { return t.name }

// LookAngles returns the horizontal position of the satellite and its slant
// range in kilometres, as seen from the observer at the given instant.
// Azimuth follows the default convention: 0° = North, clockwise.
func (t *SatelliteTarget) LookAngles(loc model.GeographicLocation, at time.Time) (model.HorizontalCoordinate, float64, error) {
	if !loc.Valid() {
		return model.HorizontalCoordinate{}, 0, core.ErrInvalidLocation
	}

	at = at.UTC()
	year, month, day := at.Date()
	hour, min, sec := at.Clock()

	posECI, _ := satellite.Propagate(t.sat, year, int(month), day, hour, min, sec)
	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)
	posECEF := satellite.ECIToECEF(posECI, gmst)

	const kmToM = 1000.0
	hc, rangeM := lookAnglesECEF(loc, posECEF.X*kmToM, posECEF.Y*kmToM, posECEF.Z*kmToM)
	return hc, rangeM / kmToM, nil
}

// Equatorial returns the topocentric RA/Dec of the satellite for the
// observer at the given instant, through the inverse frame transform.
func (t *SatelliteTarget) Equatorial(loc model.GeographicLocation, at time.Time) (model.EquatorialCoordinate, error) {
	hc, _, err := t.LookAngles(loc, at)
	if err != nil {
		return model.EquatorialCoordinate{}, err
	}
	return core.ToEquatorial(hc, loc, at)
}

// lookAnglesECEF rotates the observer-to-target range vector into the SEZ
// (South-East-Zenith) topocentric frame and reads altitude and azimuth off
// it. Both positions are ECEF metres.
func lookAnglesECEF(loc model.GeographicLocation, x, y, z float64) (model.HorizontalCoordinate, float64) {
	lat := core.Deg2Rad(loc.LatitudeDeg)
	lon := core.Deg2Rad(loc.LongitudeDeg)

	sinLat, cosLat := math.Sincos(lat)
	sinLon, cosLon := math.Sincos(lon)

	// Observer ECEF on the WGS-84 ellipsoid.
	n := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)
	ox := (n + loc.ElevationM) * cosLat * cosLon
	oy := (n + loc.ElevationM) * cosLat * sinLon
	oz := (n*(1-wgs84E2) + loc.ElevationM) * sinLat

	rx := x - ox
	ry := y - oy
	rz := z - oz

	south := sinLat*cosLon*rx + sinLat*sinLon*ry - cosLat*rz
	east := -sinLon*rx + cosLon*ry
	zenith := cosLat*cosLon*rx + cosLat*sinLon*ry + sinLat*rz

	rangeM := math.Sqrt(south*south + east*east + zenith*zenith)
	alt := core.Rad2Deg(math.Asin(zenith / rangeM))

	// North = -South, so azimuth from North clockwise is atan2(E, -S).
	az := core.Wrap360(core.Rad2Deg(math.Atan2(east, -south)))

	return model.HorizontalCoordinate{AltDeg: alt, AzDeg: az}, rangeM
}
