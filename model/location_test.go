package model

import "testing"

func TestGeographicLocationValid(t *testing.T) {
	cases := []struct {
		name string
		loc  GeographicLocation
		want bool
	}{
		{"origin", GeographicLocation{}, true},
		{"poles", GeographicLocation{LatitudeDeg: 90, LongitudeDeg: 180}, true},
		{"south pole", GeographicLocation{LatitudeDeg: -90, LongitudeDeg: -180}, true},
		{"latitude high", GeographicLocation{LatitudeDeg: 90.001}, false},
		{"latitude low", GeographicLocation{LatitudeDeg: -91}, false},
		{"longitude high", GeographicLocation{LongitudeDeg: 180.5}, false},
		{"longitude low", GeographicLocation{LongitudeDeg: -181}, false},
	}
	for _, c := range cases {
		if got := c.loc.Valid(); got != c.want {
			t.Errorf("%s: Valid() = %v, want %v", c.name, got, c.want)
		}
	}
}
