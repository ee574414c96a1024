package model

// EncoderReading is one sample of the two mount-axis rotary encoders,
// already converted by the hardware layer from raw counts to degrees. Both
// axes are normalized to [0, 360); the zero points are arbitrary until an
// alignment has been solved.
type EncoderReading struct {
	// AltAxisDeg is the altitude-axis angle in degrees.
	AltAxisDeg float64
	// AzAxisDeg is the azimuth-axis angle in degrees.
	AzAxisDeg float64
}
