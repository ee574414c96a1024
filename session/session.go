// Package session wires the pointing engine together for a host
// application: one observing site, one catalogue source, one published
// pointing model. All blocking concerns (encoders, clocks, catalogue I/O)
// stay with the collaborators; every session operation is a bounded,
// synchronous computation.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/altaz-pointing/catalog"
	"github.com/signalsfoundry/altaz-pointing/core"
	"github.com/signalsfoundry/altaz-pointing/internal/logging"
	"github.com/signalsfoundry/altaz-pointing/model"
)

// ErrUnknownObject indicates a requested object is not in the catalogue.
var ErrUnknownObject = errors.New("object not in catalogue")

// MetricsRecorder receives engine metrics. It is satisfied by
// observability.PointingCollector; a nil recorder is a no-op.
type MetricsRecorder interface {
	RecordOperation(operation, outcome string)
	ObserveResidual(separationDeg float64)
	SetCatalogObjects(n int)
	SetAligned(aligned bool)
}

// Config holds the per-session parameters.
type Config struct {
	// Location is the observing site. A session is bound to one site; a
	// mount that moves needs a new session and a fresh alignment.
	Location model.GeographicLocation
	// Solver tunes the alignment solver; zero fields take defaults.
	Solver core.SolverConfig
	// Convention fixes the azimuth reference for all transforms.
	Convention core.AzimuthConvention
}

// Option configures an ObservingSession.
type Option func(*ObservingSession)

// WithLogger attaches a structured logger.
func WithLogger(log logging.Logger) Option {
	return func(s *ObservingSession) { s.log = log }
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(s *ObservingSession) { s.metrics = m }
}

// ObservingSession is the query surface of the engine: predict, point,
// align, slew. It is safe for concurrent use: transforms are pure and the
// pointing model is swapped as a whole snapshot.
type ObservingSession struct {
	loc       model.GeographicLocation
	transform core.Transform
	solver    *core.Solver
	source    catalog.Source
	pointing  *core.PointingState

	log     logging.Logger
	metrics MetricsRecorder
	tracer  trace.Tracer
}

// New constructs a session for one observing site and catalogue source.
func New(cfg Config, source catalog.Source, opts ...Option) (*ObservingSession, error) {
	if !cfg.Location.Valid() {
		return nil, fmt.Errorf("%w: lat=%.4f lon=%.4f", core.ErrInvalidLocation,
			cfg.Location.LatitudeDeg, cfg.Location.LongitudeDeg)
	}
	if source == nil {
		return nil, errors.New("nil catalogue source")
	}

	s := &ObservingSession{
		loc:       cfg.Location,
		transform: core.Transform{Convention: cfg.Convention},
		solver:    core.NewSolver(cfg.Solver),
		source:    source,
		pointing:  core.NewPointingState(),
		log:       logging.Noop(),
		tracer:    otel.Tracer("altaz-pointing/session"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.metrics != nil {
		s.metrics.SetCatalogObjects(len(source.Objects()))
		s.metrics.SetAligned(false)
	}
	return s, nil
}

// Location returns the session's observing site.
func (s *ObservingSession) Location() model.GeographicLocation { return s.loc }

// Aligned reports whether a pointing model is currently published.
func (s *ObservingSession) Aligned() bool { return s.pointing.Aligned() }

// PredictPosition computes the horizontal position of a catalogued object at
// the given instant.
func (s *ObservingSession) PredictPosition(ctx context.Context, objectName string, at time.Time) (model.HorizontalCoordinate, error) {
	ctx, span := s.tracer.Start(ctx, "session.PredictPosition",
		trace.WithAttributes(attribute.String("object", objectName)))
	defer span.End()

	obj, ok := s.source.Lookup(objectName)
	if !ok {
		s.record("predict", ErrUnknownObject)
		return model.HorizontalCoordinate{}, fmt.Errorf("%w: %q", ErrUnknownObject, objectName)
	}

	hc, err := s.transform.ToHorizontal(obj.Position, s.loc, at)
	s.record("predict", err)
	if err != nil {
		return model.HorizontalCoordinate{}, err
	}

	s.log.Debug(ctx, "predicted position",
		logging.String("object", obj.Name),
		logging.Float64("alt_deg", hc.AltDeg),
		logging.Float64("az_deg", hc.AzDeg),
	)
	return hc, nil
}

// CurrentPointing converts a live encoder reading into the true horizontal
// direction the mount is looking at. It requires an aligned model.
func (s *ObservingSession) CurrentPointing(ctx context.Context, r model.EncoderReading) (model.HorizontalCoordinate, error) {
	hc, err := s.pointing.Apply(r)
	s.record("pointing", err)
	if err != nil {
		return model.HorizontalCoordinate{}, err
	}
	return hc, nil
}

// CurrentEquatorial converts a live encoder reading into RA/Dec through the
// aligned model and the inverse frame transform.
func (s *ObservingSession) CurrentEquatorial(ctx context.Context, r model.EncoderReading, at time.Time) (model.EquatorialCoordinate, error) {
	hc, err := s.pointing.Apply(r)
	if err != nil {
		s.record("pointing", err)
		return model.EquatorialCoordinate{}, err
	}
	eq, err := s.transform.ToEquatorial(hc, s.loc, at)
	s.record("pointing", err)
	if err != nil {
		return model.EquatorialCoordinate{}, err
	}
	return eq, nil
}

// SlewTarget computes the encoder reading that centres a catalogued object
// at the given instant, for commanding a slew. It requires an aligned model.
func (s *ObservingSession) SlewTarget(ctx context.Context, objectName string, at time.Time) (model.EncoderReading, error) {
	ctx, span := s.tracer.Start(ctx, "session.SlewTarget",
		trace.WithAttributes(attribute.String("object", objectName)))
	defer span.End()

	obj, ok := s.source.Lookup(objectName)
	if !ok {
		s.record("slew", ErrUnknownObject)
		return model.EncoderReading{}, fmt.Errorf("%w: %q", ErrUnknownObject, objectName)
	}

	hc, err := s.transform.ToHorizontal(obj.Position, s.loc, at)
	if err != nil {
		s.record("slew", err)
		return model.EncoderReading{}, err
	}

	r, err := s.pointing.Invert(hc)
	s.record("slew", err)
	if err != nil {
		return model.EncoderReading{}, err
	}

	s.log.Info(ctx, "slew target computed",
		logging.String("object", obj.Name),
		logging.Float64("alt_axis_deg", r.AltAxisDeg),
		logging.Float64("az_axis_deg", r.AzAxisDeg),
	)
	return r, nil
}

// SlewTo computes the encoder reading that centres an arbitrary horizontal
// direction, e.g. a satellite position from the track package. It requires
// an aligned model.
func (s *ObservingSession) SlewTo(ctx context.Context, hc model.HorizontalCoordinate) (model.EncoderReading, error) {
	r, err := s.pointing.Invert(hc)
	s.record("slew", err)
	if err != nil {
		return model.EncoderReading{}, err
	}
	return r, nil
}

// AlignmentObservation pairs one captured encoder reading with the
// reference object the operator centred and the capture instant.
type AlignmentObservation struct {
	Encoder model.EncoderReading
	Object  string
	Instant time.Time
}

// AlignWith runs the alignment solver over the observations and, on
// success, publishes the resulting model. On failure the previously
// published model (if any) stays in effect; ErrExcessiveResidual still
// returns the solution so the operator can inspect the residuals and pick a
// different reference star.
func (s *ObservingSession) AlignWith(ctx context.Context, observations []AlignmentObservation) (*core.Solution, error) {
	ctx, span := s.tracer.Start(ctx, "session.AlignWith",
		trace.WithAttributes(attribute.Int("observations", len(observations))))
	defer span.End()

	if len(observations) == 0 {
		s.record("align", core.ErrInsufficientAlignmentPoints)
		return nil, core.ErrInsufficientAlignmentPoints
	}

	points := make([]model.AlignmentPoint, 0, len(observations))
	for _, obs := range observations {
		obj, ok := s.source.Lookup(obs.Object)
		if !ok {
			s.record("align", ErrUnknownObject)
			return nil, fmt.Errorf("%w: %q", ErrUnknownObject, obs.Object)
		}
		hc, err := s.transform.ToHorizontal(obj.Position, s.loc, obs.Instant)
		if err != nil {
			s.record("align", err)
			return nil, fmt.Errorf("reference %s: %w", obj.Name, err)
		}
		points = append(points, model.AlignmentPoint{
			Encoder: obs.Encoder,
			True:    hc,
			Object:  obj.Name,
			Instant: obs.Instant,
		})
	}

	sol, err := s.solver.Solve(points)
	if sol != nil && s.metrics != nil {
		for _, r := range sol.Residuals {
			s.metrics.ObserveResidual(r.SeparationDeg)
		}
	}
	s.record("align", err)
	if err != nil {
		s.log.Warn(ctx, "alignment failed",
			logging.Err(err),
			logging.Int("points", len(points)),
		)
		return sol, err
	}

	s.pointing.Publish(sol.Model)
	if s.metrics != nil {
		s.metrics.SetAligned(true)
	}
	s.log.Info(ctx, "alignment solved",
		logging.Int("points", len(points)),
		logging.Float64("offset_alt_deg", sol.Model.OffsetAltDeg),
		logging.Float64("offset_az_deg", sol.Model.OffsetAzDeg),
		logging.Float64("rms_deg", sol.RMSDeg),
	)
	return sol, nil
}

// Reset drops the published pointing model, returning the session to the
// unaligned state.
func (s *ObservingSession) Reset(ctx context.Context) {
	s.pointing.Reset()
	if s.metrics != nil {
		s.metrics.SetAligned(false)
	}
	s.log.Info(ctx, "pointing model reset")
}

// record counts one operation outcome against the metrics recorder.
func (s *ObservingSession) record(operation string, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordOperation(operation, outcomeLabel(err))
}

// outcomeLabel collapses an error into a low-cardinality metrics label.
func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, core.ErrInvalidInstant):
		return "invalid_instant"
	case errors.Is(err, core.ErrInvalidLocation):
		return "invalid_location"
	case errors.Is(err, core.ErrModelNotAligned):
		return "not_aligned"
	case errors.Is(err, core.ErrInsufficientAlignmentPoints):
		return "insufficient_points"
	case errors.Is(err, core.ErrDegenerateGeometry):
		return "degenerate_geometry"
	case errors.Is(err, core.ErrExcessiveResidual):
		return "excessive_residual"
	case errors.Is(err, ErrUnknownObject):
		return "unknown_object"
	default:
		return "error"
	}
}
