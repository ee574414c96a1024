package mount

import (
	"math/rand"
	"sync"
	"time"

	"github.com/signalsfoundry/altaz-pointing/core"
	"github.com/signalsfoundry/altaz-pointing/model"
)

// SimulatedMount stands in for real encoder hardware in tests and the demo
// binary. It holds a true sky direction and reports encoder readings that
// differ from it by hidden per-axis zero offsets, optionally blurred with
// zero-mean noise. A correct alignment run must recover exactly those
// offsets.
type SimulatedMount struct {
	mu sync.RWMutex

	// zeroAltDeg and zeroAzDeg are the hidden mechanical zero offsets:
	// encoder = true - zero (mod 360 on the azimuth axis).
	zeroAltDeg float64
	zeroAzDeg  float64

	pointing model.HorizontalCoordinate

	noiseDeg float64
	rng      *rand.Rand

	clock func() time.Time

	listeners []func(model.EncoderReading, time.Time)
}

// Option configures a SimulatedMount.
type Option func(*SimulatedMount)

// WithClock substitutes the time source, for deterministic tests.
func WithClock(clock func() time.Time) Option {
	return func(m *SimulatedMount) { m.clock = clock }
}

// WithNoise adds zero-mean uniform noise of the given half-width (degrees)
// to every sample, seeded for reproducibility.
func WithNoise(halfWidthDeg float64, seed int64) Option {
	return func(m *SimulatedMount) {
		m.noiseDeg = halfWidthDeg
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// NewSimulatedMount constructs a simulated mount with the given hidden zero
// offsets.
func NewSimulatedMount(zeroAltDeg, zeroAzDeg float64, opts ...Option) *SimulatedMount {
	m := &SimulatedMount{
		zeroAltDeg: zeroAltDeg,
		zeroAzDeg:  zeroAzDeg,
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PointAt moves the simulated optical axis to a true horizontal direction,
// as if the operator had centred that position in the eyepiece.
func (m *SimulatedMount) PointAt(hc model.HorizontalCoordinate) {
	m.mu.Lock()
	m.pointing = hc
	m.mu.Unlock()
}

// Sample implements Sampler. The reported reading is the true direction
// shifted by the hidden zero offsets, both axes normalized to [0, 360).
func (m *SimulatedMount) Sample() (model.EncoderReading, time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r := model.EncoderReading{
		AltAxisDeg: core.Wrap360(m.pointing.AltDeg - m.zeroAltDeg + m.noise()),
		AzAxisDeg:  core.Wrap360(m.pointing.AzDeg - m.zeroAzDeg + m.noise()),
	}
	return r, m.clock()
}

func (m *SimulatedMount) noise() float64 {
	if m.rng == nil || m.noiseDeg == 0 {
		return 0
	}
	return (m.rng.Float64()*2 - 1) * m.noiseDeg
}

// AddListener registers a callback invoked with every polled sample.
func (m *SimulatedMount) AddListener(fn func(model.EncoderReading, time.Time)) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// Poll samples the encoders at the given interval for the given total
// duration (forever when duration is zero), notifying listeners on each
// sample. It returns a channel that is closed when polling finishes.
func (m *SimulatedMount) Poll(interval, duration time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		elapsed := time.Duration(0)
		for {
			if duration > 0 && elapsed >= duration {
				return
			}
			<-ticker.C
			elapsed += interval

			reading, at := m.Sample()

			m.mu.RLock()
			listeners := m.listeners
			m.mu.RUnlock()
			for _, fn := range listeners {
				fn(reading, at)
			}
		}
	}()
	return done
}
