package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Catalogue sources quote right ascension as "hh:mm:ss.s" (optionally with
// h/m/s unit suffixes) and declination as "±dd:mm:ss" (optionally with
// degree and arcminute/arcsecond marks). The parsers below accept both bare
// and suffixed forms.

// ParseRA converts a sexagesimal right ascension string to decimal hours.
func ParseRA(s string) (float64, error) {
	h, m, sec, err := splitSexagesimal(s, "hms")
	if err != nil {
		return 0, fmt.Errorf("parse RA %q: %w", s, err)
	}
	if h < 0 || h >= 24 {
		return 0, fmt.Errorf("parse RA %q: hours out of range", s)
	}
	return h + m/60 + sec/3600, nil
}

// ParseDec converts a sexagesimal declination string to decimal degrees.
// The sign on the degree field applies to the whole value.
func ParseDec(s string) (float64, error) {
	s = strings.TrimSpace(s)
	sign := 1.0
	switch {
	case strings.HasPrefix(s, "-"):
		sign = -1
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	d, m, sec, err := splitSexagesimal(s, "°'\"")
	if err != nil {
		return 0, fmt.Errorf("parse Dec %q: %w", s, err)
	}
	deg := sign * (d + m/60 + sec/3600)
	if deg < -90 || deg > 90 {
		return 0, fmt.Errorf("parse Dec %q: out of range", s)
	}
	return deg, nil
}

// splitSexagesimal breaks "a:b:c" into its three numeric fields, stripping
// the given unit runes from each field's tail.
func splitSexagesimal(s string, units string) (a, b, c float64, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("want three colon-separated fields, got %d", len(parts))
	}

	vals := make([]float64, 3)
	for i, p := range parts {
		p = strings.TrimRight(strings.TrimSpace(p), units)
		v, convErr := strconv.ParseFloat(p, 64)
		if convErr != nil {
			return 0, 0, 0, fmt.Errorf("field %d: %w", i+1, convErr)
		}
		if i > 0 && (v < 0 || v >= 60) {
			return 0, 0, 0, fmt.Errorf("field %d out of range", i+1)
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], nil
}
