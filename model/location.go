package model

// GeographicLocation is an observing site on Earth. It is treated as
// immutable for the duration of an observing session; a mount that has been
// moved needs a fresh alignment.
type GeographicLocation struct {
	// LatitudeDeg is the geographic latitude in degrees, north positive,
	// in [-90, 90].
	LatitudeDeg float64
	// LongitudeDeg is the geographic longitude in degrees, east positive,
	// in [-180, 180].
	LongitudeDeg float64
	// ElevationM is the site elevation above sea level in metres. It does
	// not enter the frame transforms but is kept for diagnostics.
	ElevationM float64
}

// Valid reports whether the location lies inside the geographic domain.
func (l GeographicLocation) Valid() bool {
	return l.LatitudeDeg >= -90 && l.LatitudeDeg <= 90 &&
		l.LongitudeDeg >= -180 && l.LongitudeDeg <= 180
}
