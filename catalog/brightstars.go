package catalog

import (
	"fmt"

	"github.com/signalsfoundry/altaz-pointing/model"
)

// brightStarRow is one line of the embedded alignment-star table.
type brightStarRow struct {
	name  string
	bayer string
	mag   float64
	ra    string // sexagesimal hours
	dec   string // sexagesimal degrees
}

// The 48 brightest stars by visual magnitude (Hipparcos), J2000 positions.
// These are the standard reference stars for mount alignment: bright enough
// to identify naked-eye and spread over both hemispheres.
var brightStarRows = []brightStarRow{
	{"Sirius", "alpha CMa", -1.46, "06:45:09", "-16:42:58"},
	{"Canopus", "alpha Car", -0.74, "06:23:57", "-52:41:44"},
	{"Rigil Kentaurus", "alpha Cen", -0.27, "14:39:36", "-60:50:02"},
	{"Arcturus", "alpha Boo", -0.05, "14:15:40", "+19:10:56"},
	{"Vega", "alpha Lyr", 0.03, "18:36:56", "+38:47:01"},
	{"Capella", "alpha Aur", 0.08, "05:16:41", "+45:59:53"},
	{"Rigel", "beta Ori", 0.13, "05:14:32", "-08:12:06"},
	{"Procyon", "alpha CMi", 0.34, "07:39:18", "+05:13:30"},
	{"Achernar", "alpha Eri", 0.46, "01:37:43", "-57:14:12"},
	{"Betelgeuse", "alpha Ori", 0.50, "05:55:10", "+07:24:25"},
	{"Hadar", "beta Cen", 0.61, "14:03:49", "-60:22:23"},
	{"Altair", "alpha Aql", 0.76, "19:50:47", "+08:52:06"},
	{"Acrux", "alpha Cru", 0.76, "12:26:36", "-63:05:57"},
	{"Aldebaran", "alpha Tau", 0.86, "04:35:55", "+16:30:33"},
	{"Antares", "alpha Sco", 0.96, "16:29:24", "-26:25:55"},
	{"Spica", "alpha Vir", 0.97, "13:25:12", "-11:09:41"},
	{"Pollux", "beta Gem", 1.14, "07:45:19", "+28:01:34"},
	{"Fomalhaut", "alpha PsA", 1.16, "22:57:39", "-29:37:20"},
	{"Deneb", "alpha Cyg", 1.25, "20:41:26", "+45:16:49"},
	{"Mimosa", "beta Cru", 1.25, "12:47:43", "-59:41:20"},
	{"Regulus", "alpha Leo", 1.39, "10:08:22", "+11:58:02"},
	{"Adhara", "epsilon CMa", 1.50, "06:58:38", "-28:58:19"},
	{"Castor", "alpha Gem", 1.58, "07:34:36", "+31:53:18"},
	{"Shaula", "lambda Sco", 1.62, "17:33:37", "-37:06:14"},
	{"Gacrux", "gamma Cru", 1.64, "12:31:10", "-57:06:48"},
	{"Bellatrix", "gamma Ori", 1.64, "05:25:08", "+06:20:59"},
	{"Elnath", "beta Tau", 1.65, "05:26:18", "+28:36:27"},
	{"Miaplacidus", "beta Car", 1.69, "09:13:12", "-69:43:02"},
	{"Alnilam", "epsilon Ori", 1.69, "05:36:13", "-01:12:07"},
	{"Alnair", "alpha Gru", 1.74, "22:08:14", "-46:57:40"},
	{"Alnitak", "zeta Ori", 1.77, "05:40:46", "-01:56:34"},
	{"Alioth", "epsilon UMa", 1.77, "12:54:02", "+55:57:35"},
	{"Dubhe", "alpha UMa", 1.79, "11:03:44", "+61:45:04"},
	{"Mirfak", "alpha Per", 1.80, "03:24:19", "+49:51:40"},
	{"Wezen", "delta CMa", 1.84, "07:08:23", "-26:23:36"},
	{"Kaus Australis", "epsilon Sgr", 1.85, "18:24:10", "-34:23:05"},
	{"Avior", "epsilon Car", 1.86, "08:22:31", "-59:30:34"},
	{"Alkaid", "eta UMa", 1.86, "13:47:32", "+49:18:48"},
	{"Sargas", "theta Sco", 1.87, "17:37:19", "-42:59:52"},
	{"Menkalinan", "beta Aur", 1.90, "05:59:32", "+44:56:51"},
	{"Atria", "alpha TrA", 1.91, "16:48:40", "-69:01:40"},
	{"Alhena", "gamma Gem", 1.92, "06:37:43", "+16:23:57"},
	{"Peacock", "alpha Pav", 1.94, "20:25:39", "-56:44:06"},
	{"Alsephina", "delta Vel", 1.96, "08:44:42", "-54:42:32"},
	{"Mirzam", "beta CMa", 1.98, "06:22:42", "-17:57:21"},
	{"Alphard", "alpha Hya", 1.98, "09:27:35", "-08:39:31"},
	{"Polaris", "alpha UMi", 1.98, "02:31:49", "+89:15:51"},
	{"Hamal", "alpha Ari", 2.00, "02:07:10", "+23:27:45"},
}

// BrightStars returns a catalog preloaded with the embedded bright-star
// table.
func BrightStars() (*Catalog, error) {
	c := New()
	for _, row := range brightStarRows {
		ra, err := ParseRA(row.ra)
		if err != nil {
			return nil, fmt.Errorf("bright star %s: %w", row.name, err)
		}
		dec, err := ParseDec(row.dec)
		if err != nil {
			return nil, fmt.Errorf("bright star %s: %w", row.name, err)
		}
		obj := model.CelestialObject{
			Name:        row.name,
			Designation: row.bayer,
			Position:    model.EquatorialCoordinate{RAHours: ra, DecDeg: dec},
			Magnitude:   row.mag,
		}
		if err := c.Add(obj); err != nil {
			return nil, err
		}
	}
	return c, nil
}
