// Package mount is the boundary to the mount hardware. The engine never
// talks to encoders or the system clock itself; it consumes already-sampled
// (reading, instant) pairs through the Sampler capability interface, and the
// real hardware driver lives outside this module.
package mount

import (
	"time"

	"github.com/signalsfoundry/altaz-pointing/model"
)

// Sampler supplies the current encoder reading together with the instant it
// was captured. Implementations own all blocking, timeout, and retry policy;
// a Sample call returns plain data.
type Sampler interface {
	Sample() (model.EncoderReading, time.Time)
}

// SampleFunc adapts a plain function to the Sampler interface.
type SampleFunc func() (model.EncoderReading, time.Time)

// Sample implements Sampler.
func (f SampleFunc) Sample() (model.EncoderReading, time.Time) {
	return f()
}
