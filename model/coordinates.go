package model

// EquatorialCoordinate is a sky position in the standard epoch equatorial
// frame. It is independent of observer time and location.
type EquatorialCoordinate struct {
	// RAHours is the right ascension in hours, in [0, 24).
	RAHours float64
	// DecDeg is the declination in degrees, in [-90, 90].
	DecDeg float64
}

// HorizontalCoordinate is a sky position relative to a specific observer's
// local horizon. It is only meaningful paired with the instant and location
// used to derive it; the sky moves, so it must be recomputed as time
// advances.
type HorizontalCoordinate struct {
	// AltDeg is the altitude above the horizon in degrees, in [-90, 90].
	AltDeg float64
	// AzDeg is the azimuth in degrees, in [0, 360). The reference direction
	// and sign are set by the transform convention (default: 0 = North,
	// increasing clockwise through East).
	AzDeg float64
}
