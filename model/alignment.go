package model

import "time"

// AlignmentPoint pairs an encoder sample with the true horizontal position
// of the reference object at the instant the sample was taken. Points are
// transient: they exist only to feed a solver run.
type AlignmentPoint struct {
	// Encoder is the raw axis reading captured while the reference object
	// was centred in the eyepiece.
	Encoder EncoderReading
	// True is the horizontal position of the reference object computed for
	// the capture instant.
	True HorizontalCoordinate
	// Object is the display name of the reference object, kept for
	// residual diagnostics.
	Object string
	// Instant is the UTC capture time.
	Instant time.Time
}
