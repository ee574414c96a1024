package core

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/signalsfoundry/altaz-pointing/model"
)

func TestPointingModelApplyInvertRoundTrip(t *testing.T) {
	m := &PointingModel{
		OffsetAltDeg: 3.2,
		OffsetAzDeg:  -12.7,
		AltScale:     1.0004,
		AzScale:      0.9991,
	}
	readings := []model.EncoderReading{
		{AltAxisDeg: 0, AzAxisDeg: 0},
		{AltAxisDeg: 45.5, AzAxisDeg: 310.2},
		{AltAxisDeg: 89, AzAxisDeg: 179.99},
	}
	for _, r := range readings {
		hc := m.Apply(r)
		back := m.Invert(hc)
		if math.Abs(back.AltAxisDeg-r.AltAxisDeg) > 1e-9 {
			t.Errorf("alt round trip: %v -> %v", r.AltAxisDeg, back.AltAxisDeg)
		}
		azDiff := math.Abs(Wrap180(back.AzAxisDeg - r.AzAxisDeg))
		if azDiff > 1e-9 {
			t.Errorf("az round trip: %v -> %v", r.AzAxisDeg, back.AzAxisDeg)
		}
	}
}

func TestPointingModelApplyWrapsAzimuth(t *testing.T) {
	m := &PointingModel{OffsetAzDeg: 30, AltScale: 1, AzScale: 1}
	hc := m.Apply(model.EncoderReading{AzAxisDeg: 350})
	if math.Abs(hc.AzDeg-20) > 1e-9 {
		t.Errorf("az = %v, want 20", hc.AzDeg)
	}
}

func TestPointingModelAltitudeSeam(t *testing.T) {
	// A star at 3° altitude through a +5° zero offset reads 358° on the
	// normalized altitude axis. Apply must fold the sum back to 3°, never
	// report 363°.
	m := &PointingModel{OffsetAltDeg: 5, AltScale: 1, AzScale: 1}

	hc := m.Apply(model.EncoderReading{AltAxisDeg: 358, AzAxisDeg: 100})
	if math.Abs(hc.AltDeg-3) > 1e-9 {
		t.Errorf("alt = %v, want 3", hc.AltDeg)
	}
	if hc.AltDeg < -90 || hc.AltDeg > 90 {
		t.Errorf("alt %v outside [-90, 90]", hc.AltDeg)
	}

	// The inverse maps the low altitude back below the seam, inside the
	// encoder's [0, 360) domain.
	r := m.Invert(model.HorizontalCoordinate{AltDeg: 3, AzDeg: 100})
	if math.Abs(r.AltAxisDeg-358) > 1e-9 {
		t.Errorf("alt axis = %v, want 358", r.AltAxisDeg)
	}
	if r.AltAxisDeg < 0 || r.AltAxisDeg >= 360 {
		t.Errorf("alt axis %v outside [0, 360)", r.AltAxisDeg)
	}
}

func TestPointingStateUnaligned(t *testing.T) {
	st := NewPointingState()
	if st.Aligned() {
		t.Error("fresh state reports aligned")
	}
	if _, err := st.Snapshot(); !errors.Is(err, ErrModelNotAligned) {
		t.Errorf("Snapshot: got %v, want ErrModelNotAligned", err)
	}
	if _, err := st.Apply(model.EncoderReading{}); !errors.Is(err, ErrModelNotAligned) {
		t.Errorf("Apply: got %v, want ErrModelNotAligned", err)
	}
	if _, err := st.Invert(model.HorizontalCoordinate{}); !errors.Is(err, ErrModelNotAligned) {
		t.Errorf("Invert: got %v, want ErrModelNotAligned", err)
	}
}

func TestPointingStatePublishAndReset(t *testing.T) {
	st := NewPointingState()
	st.Publish(&PointingModel{OffsetAltDeg: 5, AltScale: 1, AzScale: 1})

	if !st.Aligned() {
		t.Fatal("state not aligned after Publish")
	}
	hc, err := st.Apply(model.EncoderReading{AltAxisDeg: 10})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(hc.AltDeg-15) > 1e-9 {
		t.Errorf("alt = %v, want 15", hc.AltDeg)
	}

	st.Reset()
	if st.Aligned() {
		t.Error("state still aligned after Reset")
	}
	if _, err := st.Apply(model.EncoderReading{}); !errors.Is(err, ErrModelNotAligned) {
		t.Errorf("Apply after Reset: got %v, want ErrModelNotAligned", err)
	}
}

func TestPointingStateConcurrentReaders(t *testing.T) {
	st := NewPointingState()
	st.Publish(&PointingModel{OffsetAltDeg: 1, AltScale: 1, AzScale: 1})

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				if _, err := st.Apply(model.EncoderReading{AltAxisDeg: 40}); err != nil {
					t.Errorf("concurrent Apply: %v", err)
					return
				}
			}
		}()
	}
	for i := 0; i < 100; i++ {
		st.Publish(&PointingModel{OffsetAltDeg: float64(i), AltScale: 1, AzScale: 1})
	}
	wg.Wait()
}
