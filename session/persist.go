package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/signalsfoundry/altaz-pointing/core"
	"github.com/signalsfoundry/altaz-pointing/model"
)

// ErrStaleModel indicates a persisted pointing model is too old or was
// solved at a different site, and must not be restored.
var ErrStaleModel = errors.New("persisted pointing model is stale")

// SavedModel is the on-disk form of a solved pointing model. The alignment
// timestamp and site travel with the parameters so a later load can judge
// whether the calibration still applies.
type SavedModel struct {
	OffsetAltDeg float64 `json:"offset_alt_deg"`
	OffsetAzDeg  float64 `json:"offset_az_deg"`
	AltScale     float64 `json:"alt_scale"`
	AzScale      float64 `json:"az_scale"`
	TiltFitted   bool    `json:"tilt_fitted"`

	AlignedAt time.Time `json:"aligned_at"`
	Points    int       `json:"points"`

	Location model.GeographicLocation `json:"location"`
}

// ExportModel serializes the currently published model. It fails with
// ErrModelNotAligned while the session is unaligned.
func (s *ObservingSession) ExportModel() ([]byte, error) {
	m, err := s.pointing.Snapshot()
	if err != nil {
		return nil, err
	}
	return json.Marshal(SavedModel{
		OffsetAltDeg: m.OffsetAltDeg,
		OffsetAzDeg:  m.OffsetAzDeg,
		AltScale:     m.AltScale,
		AzScale:      m.AzScale,
		TiltFitted:   m.TiltFitted,
		AlignedAt:    m.AlignedAt,
		Points:       m.Points,
		Location:     s.loc,
	})
}

// RestoreModel republishes a previously exported model. The model is
// rejected as stale when it is older than maxAge at the reference instant,
// or when it was solved at a visibly different site (the mount has moved).
// Pass maxAge zero to skip the age check.
func (s *ObservingSession) RestoreModel(data []byte, maxAge time.Duration, now time.Time) error {
	var saved SavedModel
	if err := json.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("decode pointing model: %w", err)
	}
	if saved.AltScale == 0 || saved.AzScale == 0 {
		return fmt.Errorf("decode pointing model: zero axis scale")
	}

	if maxAge > 0 && now.Sub(saved.AlignedAt) > maxAge {
		return fmt.Errorf("%w: aligned %s ago", ErrStaleModel, now.Sub(saved.AlignedAt).Round(time.Second))
	}
	if !sameSite(saved.Location, s.loc) {
		return fmt.Errorf("%w: solved at lat=%.4f lon=%.4f, session at lat=%.4f lon=%.4f",
			ErrStaleModel,
			saved.Location.LatitudeDeg, saved.Location.LongitudeDeg,
			s.loc.LatitudeDeg, s.loc.LongitudeDeg)
	}

	s.pointing.Publish(&core.PointingModel{
		OffsetAltDeg: saved.OffsetAltDeg,
		OffsetAzDeg:  saved.OffsetAzDeg,
		AltScale:     saved.AltScale,
		AzScale:      saved.AzScale,
		TiltFitted:   saved.TiltFitted,
		AlignedAt:    saved.AlignedAt,
		Points:       saved.Points,
	})
	if s.metrics != nil {
		s.metrics.SetAligned(true)
	}
	return nil
}

// sameSite tolerates GPS-grade jitter but rejects a genuine relocation.
func sameSite(a, b model.GeographicLocation) bool {
	const tolDeg = 0.01 // roughly a kilometre
	return math.Abs(a.LatitudeDeg-b.LatitudeDeg) < tolDeg &&
		math.Abs(core.Wrap180(a.LongitudeDeg-b.LongitudeDeg)) < tolDeg
}
