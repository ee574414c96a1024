package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/signalsfoundry/altaz-pointing/model"
)

// ErrInvalidInstant indicates a timestamp outside the supported time range.
// The time scale here is Gregorian-only: instants before the calendar
// cutover are rejected rather than silently extrapolated.
var ErrInvalidInstant = errors.New("instant outside supported time range")

// ErrInvalidLocation indicates an observer location outside the geographic
// domain (|latitude| > 90° or |longitude| > 180°).
var ErrInvalidLocation = errors.New("invalid observer location")

// j2000JD is the Julian Date of the J2000.0 epoch (2000-01-01 12:00 UT).
const j2000JD = 2451545.0

// minSupportedTime is the earliest instant the time scale supports. The
// Julian Date formula below applies the Gregorian leap-year correction
// unconditionally, so proleptic dates before the 1582 calendar reform are
// out of domain.
var minSupportedTime = time.Date(1583, time.January, 1, 0, 0, 0, 0, time.UTC)

// JulianDate converts a civil UTC instant to a Julian Date. Sub-second
// precision is carried through the day fraction; millisecond resolution is
// ample for sidereal time.
func JulianDate(t time.Time) (float64, error) {
	t = t.UTC()
	if t.Before(minSupportedTime) {
		return 0, fmt.Errorf("%w: %s precedes Gregorian support epoch", ErrInvalidInstant, t.Format(time.RFC3339))
	}

	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	dayFrac := (float64(t.Hour()) +
		float64(t.Minute())/60 +
		float64(t.Second())/3600 +
		float64(t.Nanosecond())/3600e9) / 24

	// January and February count as months 13 and 14 of the previous year.
	if m <= 2 {
		y--
		m += 12
	}

	a := float64(int(y / 100))
	b := 2 - a + float64(int(a/4))

	jd := float64(int(365.25*(y+4716))) +
		float64(int(30.6001*(m+1))) +
		d + dayFrac + b - 1524.5
	return jd, nil
}

// GreenwichMeanSiderealTime returns GMST in hours, in [0, 24), for a civil
// UTC instant, using the IAU 1982 polynomial in centuries since J2000.
func GreenwichMeanSiderealTime(t time.Time) (float64, error) {
	jd, err := JulianDate(t)
	if err != nil {
		return 0, err
	}

	tc := (jd - j2000JD) / 36525.0
	gmstDeg := 280.46061837 +
		360.98564736629*(jd-j2000JD) +
		0.000387933*tc*tc -
		tc*tc*tc/38710000.0

	return DegToHours(Wrap360(gmstDeg)), nil
}

// LocalSiderealTime returns the local sidereal time in hours, in [0, 24),
// for a civil UTC instant and an observer location. It is the bridge between
// the equatorial and horizontal frames: LST equals the right ascension
// currently crossing the observer's meridian.
func LocalSiderealTime(t time.Time, loc model.GeographicLocation) (float64, error) {
	if !loc.Valid() {
		return 0, fmt.Errorf("%w: lat=%.4f lon=%.4f", ErrInvalidLocation, loc.LatitudeDeg, loc.LongitudeDeg)
	}
	gmst, err := GreenwichMeanSiderealTime(t)
	if err != nil {
		return 0, err
	}
	return WrapHours24(gmst + DegToHours(loc.LongitudeDeg)), nil
}
