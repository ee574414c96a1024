package track

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/signalsfoundry/altaz-pointing/core"
	"github.com/signalsfoundry/altaz-pointing/model"
)

const (
	issLine1 = "1 25544U 98067A   21275.59097222  .00000204  00000-0  10270-4 0  9990"
	issLine2 = "2 25544  51.6459 115.9059 0001817  61.3028  35.9198 15.49370953257760"
)

func TestNewSatelliteTargetRejectsShortLines(t *testing.T) {
	if _, err := NewSatelliteTarget("x", "1 25544U", issLine2); !errors.Is(err, ErrInvalidTLE) {
		t.Errorf("short line1: got %v", err)
	}
	if _, err := NewSatelliteTarget("x", issLine1, ""); !errors.Is(err, ErrInvalidTLE) {
		t.Errorf("empty line2: got %v", err)
	}
}

func TestLookAnglesECEFGeometry(t *testing.T) {
	// Observer on the equator at the prime meridian.
	loc := model.GeographicLocation{LatitudeDeg: 0, LongitudeDeg: 0}

	// Straight up: +X in ECEF.
	hc, rangeM := lookAnglesECEF(loc, wgs84A+500e3, 0, 0)
	if math.Abs(hc.AltDeg-90) > 1e-6 {
		t.Errorf("overhead alt = %v", hc.AltDeg)
	}
	if math.Abs(rangeM-500e3) > 1 {
		t.Errorf("overhead range = %v m", rangeM)
	}

	// Due east along +Y, on the horizon.
	hc, _ = lookAnglesECEF(loc, wgs84A, 1000e3, 0)
	if math.Abs(hc.AltDeg) > 1e-6 || math.Abs(hc.AzDeg-90) > 1e-6 {
		t.Errorf("east target: alt=%v az=%v", hc.AltDeg, hc.AzDeg)
	}

	// Due north along +Z.
	hc, _ = lookAnglesECEF(loc, wgs84A, 0, 1000e3)
	if math.Abs(hc.AltDeg) > 1e-6 {
		t.Errorf("north target alt = %v", hc.AltDeg)
	}
	if hc.AzDeg > 1e-6 && hc.AzDeg < 360-1e-6 {
		t.Errorf("north target az = %v, want 0", hc.AzDeg)
	}
}

func TestLookAnglesSanity(t *testing.T) {
	iss, err := NewSatelliteTarget("ISS", issLine1, issLine2)
	if err != nil {
		t.Fatal(err)
	}
	if iss.Name() != "ISS" {
		t.Errorf("Name = %q", iss.Name())
	}

	loc := model.GeographicLocation{LatitudeDeg: 50.314, LongitudeDeg: 8.255, ElevationM: 190}
	at := time.Date(2021, 10, 2, 20, 0, 0, 0, time.UTC)

	for i := 0; i < 90; i++ {
		hc, rangeKm, err := iss.LookAngles(loc, at.Add(time.Duration(i)*time.Minute))
		if err != nil {
			t.Fatal(err)
		}
		if hc.AltDeg < -90 || hc.AltDeg > 90 {
			t.Fatalf("minute %d: alt %v out of range", i, hc.AltDeg)
		}
		if hc.AzDeg < 0 || hc.AzDeg >= 360 {
			t.Fatalf("minute %d: az %v out of range", i, hc.AzDeg)
		}
		// LEO slant range: never closer than orbital height, never beyond
		// the far side of the Earth.
		if rangeKm < 300 || rangeKm > 15000 {
			t.Fatalf("minute %d: range %v km implausible", i, rangeKm)
		}
	}
}

func TestLookAnglesRejectsInvalidLocation(t *testing.T) {
	iss, err := NewSatelliteTarget("ISS", issLine1, issLine2)
	if err != nil {
		t.Fatal(err)
	}
	bad := model.GeographicLocation{LatitudeDeg: 91}
	if _, _, err := iss.LookAngles(bad, time.Now()); !errors.Is(err, core.ErrInvalidLocation) {
		t.Errorf("got %v, want ErrInvalidLocation", err)
	}
}

func TestEquatorialConsistentWithLookAngles(t *testing.T) {
	iss, err := NewSatelliteTarget("ISS", issLine1, issLine2)
	if err != nil {
		t.Fatal(err)
	}
	loc := model.GeographicLocation{LatitudeDeg: 50.314, LongitudeDeg: 8.255}
	at := time.Date(2021, 10, 2, 20, 30, 0, 0, time.UTC)

	hc, _, err := iss.LookAngles(loc, at)
	if err != nil {
		t.Fatal(err)
	}
	eq, err := iss.Equatorial(loc, at)
	if err != nil {
		t.Fatal(err)
	}
	back, err := core.ToHorizontal(eq, loc, at)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(back.AltDeg-hc.AltDeg) > 1e-6 {
		t.Errorf("alt %v vs %v", back.AltDeg, hc.AltDeg)
	}
	azDiff := math.Abs(core.Wrap180(back.AzDeg - hc.AzDeg))
	if azDiff > 1e-6 {
		t.Errorf("az %v vs %v", back.AzDeg, hc.AzDeg)
	}
}
