package core

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/signalsfoundry/altaz-pointing/model"
)

// ErrInsufficientAlignmentPoints indicates a solve was requested with no
// alignment points.
var ErrInsufficientAlignmentPoints = errors.New("no alignment points supplied")

// ErrDegenerateGeometry indicates the reference objects sit too close
// together on the sky to separate a tilt correction from a plain offset.
var ErrDegenerateGeometry = errors.New("alignment geometry too degenerate for tilt fit")

// ErrExcessiveResidual indicates even the best fit exceeds the residual
// tolerance on every point, which usually means a reference star was
// misidentified.
var ErrExcessiveResidual = errors.New("alignment residuals exceed tolerance on all points")

// SolverConfig tunes the alignment solver.
type SolverConfig struct {
	// ResidualToleranceDeg is the per-point residual above which a point is
	// flagged as an outlier.
	ResidualToleranceDeg float64
	// EnableTilt requests the per-axis scale fit on top of the offsets.
	// It needs at least three well-separated points; with fewer the solver
	// degrades to the offset-only model.
	EnableTilt bool
	// MinSeparationDeg is the minimum angular separation between any two
	// reference objects before a tilt fit is considered, guarding the
	// degenerate two-point case.
	MinSeparationDeg float64
	// MinTriangleArea is the minimum planar triangle area (unit sphere)
	// that the three most-spread reference directions must span for a tilt
	// fit. Collinear or bunched stars fail this.
	MinTriangleArea float64
}

// DefaultSolverConfig returns the tolerances used when the host supplies
// none.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		ResidualToleranceDeg: 1.0,
		MinSeparationDeg:     10.0,
		MinTriangleArea:      0.05,
	}
}

// PointResidual reports how far one alignment point sits from the solved
// model's prediction.
type PointResidual struct {
	// Object is the reference object's display name.
	Object string
	// AltDeg and AzDeg are the signed per-axis residuals in degrees.
	AltDeg float64
	AzDeg  float64
	// SeparationDeg is the total angular error between the predicted and
	// true positions.
	SeparationDeg float64
	// Outlier marks a point whose separation exceeds the configured
	// tolerance. The operator should re-check the star identification.
	Outlier bool
}

// Solution is the result of a successful (or diagnosable) solver run.
type Solution struct {
	Model     *PointingModel
	Residuals []PointResidual
	// RMSDeg is the root-mean-square of the per-point separations.
	RMSDeg float64
}

// Solver reconciles noisy encoder readings with true sky coordinates. It is
// stateless: each Solve is a pure computation over its inputs, and the
// caller decides whether to publish the resulting model.
type Solver struct {
	cfg SolverConfig
}

// NewSolver constructs a solver, filling zero tolerances from the defaults.
func NewSolver(cfg SolverConfig) *Solver {
	def := DefaultSolverConfig()
	if cfg.ResidualToleranceDeg <= 0 {
		cfg.ResidualToleranceDeg = def.ResidualToleranceDeg
	}
	if cfg.MinSeparationDeg <= 0 {
		cfg.MinSeparationDeg = def.MinSeparationDeg
	}
	if cfg.MinTriangleArea <= 0 {
		cfg.MinTriangleArea = def.MinTriangleArea
	}
	return &Solver{cfg: cfg}
}

// Solve computes a pointing model from the supplied alignment points.
//
// A single point yields the per-axis differences directly. With more points
// the altitude offset is the ordinary mean of the differences, while the
// azimuth offset is the circular mean of the wrapped differences, so points
// straddling the 0°/360° seam average correctly. When a tilt fit is
// requested and at least three well-separated points are available, a
// per-axis linear least squares adds scale corrections.
//
// On ErrExcessiveResidual the returned Solution still carries the per-point
// residuals for diagnostics; the model must not be published.
func (s *Solver) Solve(points []model.AlignmentPoint) (*Solution, error) {
	if len(points) == 0 {
		return nil, ErrInsufficientAlignmentPoints
	}

	// Per-point offsets, wrapped into [-180, 180) so a difference near
	// ±360° never shows up as a spurious full-turn correction.
	dAlt := make([]float64, len(points))
	dAz := make([]float64, len(points))
	for i, p := range points {
		dAlt[i] = Wrap180(p.True.AltDeg - p.Encoder.AltAxisDeg)
		dAz[i] = Wrap180(p.True.AzDeg - p.Encoder.AzAxisDeg)
	}

	m := &PointingModel{
		OffsetAltDeg: mean(dAlt),
		OffsetAzDeg:  circularMeanDeg(dAz),
		AltScale:     1,
		AzScale:      1,
		AlignedAt:    latestInstant(points),
		Points:       len(points),
	}

	if s.cfg.EnableTilt && len(points) >= 2 {
		if err := s.checkTiltGeometry(points); err != nil {
			return nil, err
		}
		if len(points) >= 3 {
			// Offset-only stays the fallback if either axis lacks spread.
			if fitted, ok := s.fitTilt(points); ok {
				m = fitted
				m.AlignedAt = latestInstant(points)
				m.Points = len(points)
			}
		}
	}

	sol := &Solution{Model: m}
	outliers := 0
	var sumSq float64
	for _, p := range points {
		pred := m.Apply(p.Encoder)
		r := PointResidual{
			Object: p.Object,
			AltDeg: p.True.AltDeg - pred.AltDeg,
			AzDeg:  Wrap180(p.True.AzDeg - pred.AzDeg),
			SeparationDeg: SeparationDeg(
				p.True.AltDeg, p.True.AzDeg,
				pred.AltDeg, pred.AzDeg,
			),
		}
		r.Outlier = r.SeparationDeg > s.cfg.ResidualToleranceDeg
		if r.Outlier {
			outliers++
		}
		sumSq += r.SeparationDeg * r.SeparationDeg
		sol.Residuals = append(sol.Residuals, r)
	}
	sol.RMSDeg = math.Sqrt(sumSq / float64(len(points)))

	if outliers == len(points) {
		return sol, fmt.Errorf("%w: rms %.3f° over %d points", ErrExcessiveResidual, sol.RMSDeg, len(points))
	}
	return sol, nil
}

// checkTiltGeometry rejects reference sets too bunched or collinear to
// separate tilt from offset.
func (s *Solver) checkTiltGeometry(points []model.AlignmentPoint) error {
	maxSep := 0.0
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			sep := SeparationDeg(
				points[i].True.AltDeg, points[i].True.AzDeg,
				points[j].True.AltDeg, points[j].True.AzDeg,
			)
			if sep > maxSep {
				maxSep = sep
			}
		}
	}
	if maxSep < s.cfg.MinSeparationDeg {
		return fmt.Errorf("%w: widest pair only %.2f° apart", ErrDegenerateGeometry, maxSep)
	}

	if len(points) >= 3 {
		maxArea := 0.0
		for i := range points {
			for j := i + 1; j < len(points); j++ {
				for k := j + 1; k < len(points); k++ {
					area := TriangleArea(
						UnitFromAltAz(points[i].True.AltDeg, points[i].True.AzDeg),
						UnitFromAltAz(points[j].True.AltDeg, points[j].True.AzDeg),
						UnitFromAltAz(points[k].True.AltDeg, points[k].True.AzDeg),
					)
					if area > maxArea {
						maxArea = area
					}
				}
			}
		}
		if maxArea < s.cfg.MinTriangleArea {
			return fmt.Errorf("%w: best triangle area %.4f below %.4f", ErrDegenerateGeometry, maxArea, s.cfg.MinTriangleArea)
		}
	}
	return nil
}

// fitTilt runs a per-axis linear least squares true = scale·encoder + offset.
// The azimuth axis is unwrapped around the first point before fitting so the
// regression never crosses the 0°/360° seam. It reports ok=false when an
// axis has no spread to fit against.
func (s *Solver) fitTilt(points []model.AlignmentPoint) (*PointingModel, bool) {
	n := len(points)
	altX := make([]float64, n)
	altY := make([]float64, n)
	azX := make([]float64, n)
	azY := make([]float64, n)

	az0 := points[0].Encoder.AzAxisDeg
	for i, p := range points {
		altX[i] = p.Encoder.AltAxisDeg
		altY[i] = p.True.AltDeg
		azX[i] = az0 + Wrap180(p.Encoder.AzAxisDeg-az0)
		azY[i] = azX[i] + Wrap180(p.True.AzDeg-p.Encoder.AzAxisDeg)
	}

	altScale, altOffset, okAlt := linearFit(altX, altY)
	azScale, azOffset, okAz := linearFit(azX, azY)
	if !okAlt || !okAz {
		return nil, false
	}

	return &PointingModel{
		OffsetAltDeg: altOffset,
		OffsetAzDeg:  azOffset,
		AltScale:     altScale,
		AzScale:      azScale,
		TiltFitted:   true,
	}, true
}

// linearFit returns the least-squares slope and intercept of y over x. It
// reports ok=false when x has effectively no variance.
func linearFit(x, y []float64) (slope, intercept float64, ok bool) {
	n := float64(len(x))
	xBar := mean(x)
	yBar := mean(y)

	var sxx, sxy float64
	for i := range x {
		dx := x[i] - xBar
		sxx += dx * dx
		sxy += dx * (y[i] - yBar)
	}
	if sxx/n < 1e-9 {
		return 0, 0, false
	}
	slope = sxy / sxx
	intercept = yBar - slope*xBar
	return slope, intercept, true
}

func mean(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// circularMeanDeg averages angles through their sine and cosine components,
// which is the least-squares direction estimate on the circle.
func circularMeanDeg(degs []float64) float64 {
	var sinSum, cosSum float64
	for _, d := range degs {
		r := Deg2Rad(d)
		sinSum += math.Sin(r)
		cosSum += math.Cos(r)
	}
	return Wrap180(Rad2Deg(math.Atan2(sinSum, cosSum)))
}

func latestInstant(points []model.AlignmentPoint) time.Time {
	var latest time.Time
	for _, p := range points {
		if p.Instant.After(latest) {
			latest = p.Instant
		}
	}
	return latest
}
