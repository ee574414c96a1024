package session

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/signalsfoundry/altaz-pointing/core"
	"github.com/signalsfoundry/altaz-pointing/model"
)

func TestExportModelUnaligned(t *testing.T) {
	s := newTestSession(t)
	if _, err := s.ExportModel(); !errors.Is(err, core.ErrModelNotAligned) {
		t.Fatalf("got %v, want ErrModelNotAligned", err)
	}
}

func TestExportRestoreRoundTrip(t *testing.T) {
	const (
		offAlt = 3.2
		offAz  = -12.7
	)
	s := newTestSession(t)
	ctx := context.Background()

	if _, err := s.AlignWith(ctx, observeStars(t, []string{"Vega", "Arcturus"}, offAlt, offAz)); err != nil {
		t.Fatal(err)
	}
	data, err := s.ExportModel()
	if err != nil {
		t.Fatal(err)
	}

	// A fresh session at the same site picks the calibration back up.
	restored := newTestSession(t)
	now := testInstant.Add(2 * time.Hour)
	if err := restored.RestoreModel(data, 24*time.Hour, now); err != nil {
		t.Fatal(err)
	}
	if !restored.Aligned() {
		t.Fatal("session not aligned after restore")
	}

	obs := observeStars(t, []string{"Vega"}, offAlt, offAz)[0]
	hc, err := restored.CurrentPointing(ctx, obs.Encoder)
	if err != nil {
		t.Fatal(err)
	}
	want, err := restored.PredictPosition(ctx, "Vega", testInstant)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(hc.AltDeg-want.AltDeg) > 1e-9 || math.Abs(core.Wrap180(hc.AzDeg-want.AzDeg)) > 1e-9 {
		t.Errorf("restored pointing = %+v, want %+v", hc, want)
	}
}

func TestRestoreModelRejectsStaleAge(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	if _, err := s.AlignWith(ctx, observeStars(t, []string{"Vega"}, 1, 2)); err != nil {
		t.Fatal(err)
	}
	data, err := s.ExportModel()
	if err != nil {
		t.Fatal(err)
	}

	restored := newTestSession(t)
	tooLate := testInstant.Add(49 * time.Hour)
	if err := restored.RestoreModel(data, 48*time.Hour, tooLate); !errors.Is(err, ErrStaleModel) {
		t.Fatalf("got %v, want ErrStaleModel", err)
	}
	if restored.Aligned() {
		t.Error("stale model was published")
	}

	// maxAge zero skips the age check entirely.
	if err := restored.RestoreModel(data, 0, tooLate); err != nil {
		t.Fatalf("age check not skipped: %v", err)
	}
}

func TestRestoreModelRejectsMovedSite(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	if _, err := s.AlignWith(ctx, observeStars(t, []string{"Vega"}, 1, 2)); err != nil {
		t.Fatal(err)
	}
	data, err := s.ExportModel()
	if err != nil {
		t.Fatal(err)
	}

	moved := model.GeographicLocation{
		LatitudeDeg:  testSite.LatitudeDeg + 0.5,
		LongitudeDeg: testSite.LongitudeDeg,
	}
	other, err := New(Config{Location: moved}, testCatalog(t))
	if err != nil {
		t.Fatal(err)
	}
	if err := other.RestoreModel(data, 0, testInstant); !errors.Is(err, ErrStaleModel) {
		t.Fatalf("got %v, want ErrStaleModel", err)
	}
	if other.Aligned() {
		t.Error("relocated model was published")
	}
}

func TestRestoreModelRejectsBadPayload(t *testing.T) {
	s := newTestSession(t)
	if err := s.RestoreModel([]byte("{not json"), 0, testInstant); err == nil {
		t.Error("malformed JSON accepted")
	}
	// A payload with zero scales would divide by zero on Invert.
	if err := s.RestoreModel([]byte(`{"offset_alt_deg":1}`), 0, testInstant); err == nil {
		t.Error("zero-scale payload accepted")
	}
	if s.Aligned() {
		t.Error("rejected payload was published")
	}
}
