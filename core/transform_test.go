package core

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/signalsfoundry/altaz-pointing/model"
)

var testSite = model.GeographicLocation{LatitudeDeg: 50.314, LongitudeDeg: 8.255, ElevationM: 190}

// meridianObject returns an equatorial position that sits exactly on the
// observer's meridian (hour angle zero) at the given instant.
func meridianObject(t *testing.T, loc model.GeographicLocation, decDeg float64, at time.Time) model.EquatorialCoordinate {
	t.Helper()
	lst, err := LocalSiderealTime(at, loc)
	if err != nil {
		t.Fatal(err)
	}
	return model.EquatorialCoordinate{RAHours: lst, DecDeg: decDeg}
}

func TestToHorizontalOnMeridian(t *testing.T) {
	at := time.Date(2024, 9, 15, 21, 0, 0, 0, time.UTC)

	// An object culminating south of the zenith: alt = 90 - (lat - dec),
	// az = 180.
	eq := meridianObject(t, testSite, 20, at)
	hc, err := ToHorizontal(eq, testSite, at)
	if err != nil {
		t.Fatal(err)
	}
	wantAlt := 90 - (testSite.LatitudeDeg - 20)
	if math.Abs(hc.AltDeg-wantAlt) > 1e-6 {
		t.Errorf("alt = %.6f, want %.6f", hc.AltDeg, wantAlt)
	}
	if math.Abs(hc.AzDeg-180) > 1e-6 {
		t.Errorf("az = %.6f, want 180", hc.AzDeg)
	}

	// Culminating north of the zenith: az = 0.
	eq = meridianObject(t, testSite, 70, at)
	hc, err = ToHorizontal(eq, testSite, at)
	if err != nil {
		t.Fatal(err)
	}
	wantAlt = 90 - (70 - testSite.LatitudeDeg)
	if math.Abs(hc.AltDeg-wantAlt) > 1e-6 {
		t.Errorf("alt = %.6f, want %.6f", hc.AltDeg, wantAlt)
	}
	if hc.AzDeg > 1e-6 && hc.AzDeg < 360-1e-6 {
		t.Errorf("az = %.6f, want 0", hc.AzDeg)
	}
}

func TestToHorizontalCelestialPole(t *testing.T) {
	// The north celestial pole stands at alt = latitude, az = 0 at any time.
	at := time.Date(2024, 3, 3, 4, 45, 0, 0, time.UTC)
	hc, err := ToHorizontal(model.EquatorialCoordinate{RAHours: 2.5, DecDeg: 90}, testSite, at)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(hc.AltDeg-testSite.LatitudeDeg) > 1e-6 {
		t.Errorf("pole alt = %.6f, want %.6f", hc.AltDeg, testSite.LatitudeDeg)
	}
}

func TestToHorizontalZenith(t *testing.T) {
	at := time.Date(2024, 5, 20, 23, 0, 0, 0, time.UTC)
	eq := meridianObject(t, testSite, testSite.LatitudeDeg, at)
	hc, err := ToHorizontal(eq, testSite, at)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(hc.AltDeg-90) > 1e-6 {
		t.Errorf("zenith alt = %.6f", hc.AltDeg)
	}
	if math.IsNaN(hc.AzDeg) {
		t.Error("zenith azimuth is NaN")
	}
}

func TestToHorizontalAzimuthAlwaysInRange(t *testing.T) {
	at := time.Date(2024, 1, 7, 2, 0, 0, 0, time.UTC)
	for ra := 0.0; ra < 24; ra += 1.5 {
		for dec := -80.0; dec <= 80; dec += 20 {
			hc, err := ToHorizontal(model.EquatorialCoordinate{RAHours: ra, DecDeg: dec}, testSite, at)
			if err != nil {
				t.Fatal(err)
			}
			if hc.AzDeg < 0 || hc.AzDeg >= 360 {
				t.Errorf("ra=%v dec=%v: az %v out of [0,360)", ra, dec, hc.AzDeg)
			}
			if hc.AltDeg < -90 || hc.AltDeg > 90 {
				t.Errorf("ra=%v dec=%v: alt %v out of [-90,90]", ra, dec, hc.AltDeg)
			}
		}
	}
}

func TestTransformRoundTrip(t *testing.T) {
	at := time.Date(2024, 10, 30, 20, 15, 0, 0, time.UTC)
	sites := []model.GeographicLocation{
		testSite,
		{LatitudeDeg: -33.9, LongitudeDeg: 18.4},
		{LatitudeDeg: 0.1, LongitudeDeg: -78.5},
	}
	for _, loc := range sites {
		for ra := 0.25; ra < 24; ra += 2.75 {
			for dec := -75.0; dec <= 75; dec += 25 {
				eq := model.EquatorialCoordinate{RAHours: ra, DecDeg: dec}
				hc, err := ToHorizontal(eq, loc, at)
				if err != nil {
					t.Fatal(err)
				}
				back, err := ToEquatorial(hc, loc, at)
				if err != nil {
					t.Fatal(err)
				}
				raDiff := math.Abs(back.RAHours - eq.RAHours)
				if raDiff > 12 {
					raDiff = 24 - raDiff
				}
				if raDiff > 1e-9 || math.Abs(back.DecDeg-eq.DecDeg) > 1e-9 {
					t.Errorf("lat=%v ra=%v dec=%v: round trip gave ra=%v dec=%v",
						loc.LatitudeDeg, ra, dec, back.RAHours, back.DecDeg)
				}
			}
		}
	}
}

func TestSouthClockwiseConvention(t *testing.T) {
	at := time.Date(2024, 4, 12, 22, 30, 0, 0, time.UTC)
	eq := meridianObject(t, testSite, 10, at)

	south := Transform{Convention: AzimuthSouthClockwise}
	hc, err := south.ToHorizontal(eq, testSite, at)
	if err != nil {
		t.Fatal(err)
	}
	// On the southern meridian the south-referenced azimuth is 0.
	if hc.AzDeg > 1e-6 && hc.AzDeg < 360-1e-6 {
		t.Errorf("south-referenced meridian az = %.6f, want 0", hc.AzDeg)
	}

	// The inverse must use the same convention.
	back, err := south.ToEquatorial(hc, testSite, at)
	if err != nil {
		t.Fatal(err)
	}
	raDiff := math.Abs(back.RAHours - eq.RAHours)
	if raDiff > 12 {
		raDiff = 24 - raDiff
	}
	if raDiff > 1e-9 || math.Abs(back.DecDeg-eq.DecDeg) > 1e-9 {
		t.Errorf("south convention round trip gave ra=%v dec=%v", back.RAHours, back.DecDeg)
	}
}

func TestTransformPropagatesTimeFrameErrors(t *testing.T) {
	eq := model.EquatorialCoordinate{RAHours: 5, DecDeg: 20}
	if _, err := ToHorizontal(eq, testSite, time.Time{}); !errors.Is(err, ErrInvalidInstant) {
		t.Errorf("zero instant: got %v, want ErrInvalidInstant", err)
	}
	bad := model.GeographicLocation{LatitudeDeg: 0, LongitudeDeg: 181}
	if _, err := ToHorizontal(eq, bad, time.Now()); !errors.Is(err, ErrInvalidLocation) {
		t.Errorf("bad location: got %v, want ErrInvalidLocation", err)
	}
}
