package core

import (
	"errors"
	"sync"
	"time"

	"github.com/signalsfoundry/altaz-pointing/model"
)

// ErrModelNotAligned indicates a pointing query was made before any
// successful alignment. An unaligned model never returns a coordinate.
var ErrModelNotAligned = errors.New("pointing model not aligned")

// PointingModel maps raw encoder readings to true horizontal coordinates.
// The baseline shape is a constant per-axis offset between encoder zero and
// horizontal zero; a per-axis scale term is layered on top when a tilt fit
// succeeded. A model is immutable once built: the solver produces a new one
// and PointingState publishes it wholesale.
type PointingModel struct {
	// OffsetAltDeg and OffsetAzDeg are the per-axis zero offsets:
	// true = scale·encoder + offset, folded back into each axis frame.
	OffsetAltDeg float64
	OffsetAzDeg  float64

	// AltScale and AzScale are the per-axis scale corrections. They stay
	// 1 unless a tilt fit with enough well-separated points succeeded.
	AltScale float64
	AzScale  float64

	// TiltFitted records whether the scale terms came from an actual fit
	// rather than the offset-only fallback.
	TiltFitted bool

	// AlignedAt is the UTC time of the solve that produced this model, and
	// Points the number of alignment points it consumed. Both travel with
	// the model when it is persisted so a host can judge staleness.
	AlignedAt time.Time
	Points    int
}

// Apply converts a raw encoder reading to the true horizontal coordinate
// under this model. Both axes arrive normalized to [0, 360), so the results
// are folded back into their frames: azimuth into [0, 360), altitude into
// [-180, 180) so a reading just below the seam (e.g. 358° under a +5°
// offset) comes out as a small signed altitude instead of 363°.
func (m *PointingModel) Apply(r model.EncoderReading) model.HorizontalCoordinate {
	return model.HorizontalCoordinate{
		AltDeg: Wrap180(m.AltScale*r.AltAxisDeg + m.OffsetAltDeg),
		AzDeg:  Wrap360(m.AzScale*r.AzAxisDeg + m.OffsetAzDeg),
	}
}

// Invert converts a desired horizontal coordinate to the encoder reading
// that centres it, for commanding a slew. Both axes are normalized to
// [0, 360) per the encoder contract, so a low altitude under a positive
// offset maps just below the seam rather than to a negative reading.
func (m *PointingModel) Invert(hc model.HorizontalCoordinate) model.EncoderReading {
	return model.EncoderReading{
		AltAxisDeg: Wrap360((hc.AltDeg - m.OffsetAltDeg) / m.AltScale),
		AzAxisDeg:  Wrap360((hc.AzDeg - m.OffsetAzDeg) / m.AzScale),
	}
}

// PointingState is the one piece of shared mutable state in the engine: the
// currently published pointing model. It is read on every pointing query,
// potentially at encoder polling rate, and written only when an alignment
// succeeds. Readers always observe a complete model or none; a publish
// swaps the whole snapshot, so a new altitude offset can never pair with an
// old azimuth offset.
type PointingState struct {
	mu      sync.RWMutex
	current *PointingModel
}

// NewPointingState returns state in the Unaligned condition.
func NewPointingState() *PointingState {
	return &PointingState{}
}

// Snapshot returns the currently published model. It fails with
// ErrModelNotAligned while no alignment has been performed or after a Reset.
func (s *PointingState) Snapshot() (*PointingModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrModelNotAligned
	}
	return s.current, nil
}

// Aligned reports whether a model is currently published.
func (s *PointingState) Aligned() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Publish atomically replaces the current model. The caller must not mutate
// the model after publishing.
func (s *PointingState) Publish(m *PointingModel) {
	s.mu.Lock()
	s.current = m
	s.mu.Unlock()
}

// Reset drops the published model, returning the state to Unaligned. This
// is the only transition out of the Aligned condition; failed solves leave
// the published model untouched.
func (s *PointingState) Reset() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// Apply resolves the current model and converts the reading. It fails with
// ErrModelNotAligned while unaligned.
func (s *PointingState) Apply(r model.EncoderReading) (model.HorizontalCoordinate, error) {
	m, err := s.Snapshot()
	if err != nil {
		return model.HorizontalCoordinate{}, err
	}
	return m.Apply(r), nil
}

// Invert resolves the current model and computes the encoder reading for a
// desired horizontal position. It fails with ErrModelNotAligned while
// unaligned.
func (s *PointingState) Invert(hc model.HorizontalCoordinate) (model.EncoderReading, error) {
	m, err := s.Snapshot()
	if err != nil {
		return model.EncoderReading{}, err
	}
	return m.Invert(hc), nil
}
