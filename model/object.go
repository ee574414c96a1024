package model

// CelestialObject is a catalogued sky target: a bright star used for
// alignment or a deep-sky object to navigate to. Records are supplied by a
// catalogue source and are immutable.
type CelestialObject struct {
	// Name is the display name, e.g. "Vega" or "NGC 224".
	Name string
	// Designation is an optional secondary identifier such as the Bayer
	// designation ("alpha Lyrae").
	Designation string

	Position EquatorialCoordinate

	// Magnitude is the visual brightness (smaller is brighter). Used only
	// for display and alignment-star filtering, never by the transforms.
	Magnitude float64
}
