package core

import (
	"sort"
	"time"

	"github.com/signalsfoundry/altaz-pointing/model"
)

// DefaultMinAlignmentAltDeg is the altitude below which stars are skipped as
// alignment references: low targets suffer from obstructions and bad seeing.
const DefaultMinAlignmentAltDeg = 20.0

// AlignmentCandidate is a catalogued object together with its horizontal
// position at the planning instant.
type AlignmentCandidate struct {
	Object   model.CelestialObject
	Position model.HorizontalCoordinate
}

// SuitableStars returns the objects currently above minAltDeg, sorted
// highest first. Pass minAltDeg <= 0 to use DefaultMinAlignmentAltDeg.
// Objects are evaluated with the default azimuth convention.
func SuitableStars(objects []model.CelestialObject, loc model.GeographicLocation, t time.Time, minAltDeg float64) ([]AlignmentCandidate, error) {
	if minAltDeg <= 0 {
		minAltDeg = DefaultMinAlignmentAltDeg
	}

	var out []AlignmentCandidate
	for _, obj := range objects {
		hc, err := ToHorizontal(obj.Position, loc, t)
		if err != nil {
			return nil, err
		}
		if hc.AltDeg < minAltDeg {
			continue
		}
		out = append(out, AlignmentCandidate{Object: obj, Position: hc})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Position.AltDeg > out[j].Position.AltDeg
	})
	return out, nil
}

// Triple is a candidate three-star alignment set ranked by the planar
// triangle area its direction vectors span. Larger area means better
// conditioning for the solver.
type Triple struct {
	Stars [3]AlignmentCandidate
	Area  float64
}

// BestTriples ranks all three-star combinations of the candidates by
// triangle area, largest first, and returns at most limit of them. Pass
// limit <= 0 for all.
func BestTriples(cands []AlignmentCandidate, limit int) []Triple {
	var triples []Triple
	for i := 0; i < len(cands); i++ {
		for j := i + 1; j < len(cands); j++ {
			for k := j + 1; k < len(cands); k++ {
				area := TriangleArea(
					UnitFromAltAz(cands[i].Position.AltDeg, cands[i].Position.AzDeg),
					UnitFromAltAz(cands[j].Position.AltDeg, cands[j].Position.AzDeg),
					UnitFromAltAz(cands[k].Position.AltDeg, cands[k].Position.AzDeg),
				)
				triples = append(triples, Triple{
					Stars: [3]AlignmentCandidate{cands[i], cands[j], cands[k]},
					Area:  area,
				})
			}
		}
	}

	sort.Slice(triples, func(i, j int) bool { return triples[i].Area > triples[j].Area })
	if limit > 0 && len(triples) > limit {
		triples = triples[:limit]
	}
	return triples
}
