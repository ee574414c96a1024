// Command pointing-sim demonstrates the alignment and pointing pipeline
// end to end against a simulated mount: it picks alignment stars from the
// embedded bright-star catalogue, solves a pointing model from simulated
// encoder readings with a hidden zero offset, then tracks a target and
// reports how well the solved model recovers true sky positions. Prometheus
// metrics are served for the duration of the run.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/signalsfoundry/altaz-pointing/catalog"
	"github.com/signalsfoundry/altaz-pointing/core"
	"github.com/signalsfoundry/altaz-pointing/internal/logging"
	"github.com/signalsfoundry/altaz-pointing/internal/observability"
	"github.com/signalsfoundry/altaz-pointing/model"
	"github.com/signalsfoundry/altaz-pointing/mount"
	"github.com/signalsfoundry/altaz-pointing/session"
	"github.com/signalsfoundry/altaz-pointing/track"
)

// ISS TLE used for the satellite-handoff demo when -tle-file is not given.
const (
	issTLE1 = "1 25544U 98067A   21275.59097222  .00000204  00000-0  10270-4 0  9990"
	issTLE2 = "2 25544  51.6459 115.9059 0001817  61.3028  35.9198 15.49370953257760"
)

func main() {
	lat := flag.Float64("lat", 50.314, "observer latitude in degrees, north positive")
	lon := flag.Float64("lon", 8.255, "observer longitude in degrees, east positive")
	hiddenAlt := flag.Float64("hidden-offset-alt", 3.2, "simulated mount altitude-axis zero offset (degrees)")
	hiddenAz := flag.Float64("hidden-offset-az", -12.7, "simulated mount azimuth-axis zero offset (degrees)")
	noise := flag.Float64("noise", 0.02, "simulated encoder noise half-width (degrees)")
	stars := flag.Int("stars", 3, "number of alignment stars (1, 2, or 3+)")
	tilt := flag.Bool("tilt", false, "fit the tilt/scale correction (needs 3+ stars)")
	duration := flag.Duration("duration", 30*time.Second, "tracking demo duration")
	interval := flag.Duration("interval", 2*time.Second, "encoder polling interval")
	metricsAddr := flag.String("metrics-addr", ":9090", "HTTP address for Prometheus /metrics")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.Err(err))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdownTracing, log)

	collector, err := observability.NewPointingCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.Err(err))
		os.Exit(1)
	}
	serveMetrics(*metricsAddr, collector, log)

	stars48, err := catalog.BrightStars()
	if err != nil {
		log.Error(ctx, "failed to load bright-star catalogue", logging.Err(err))
		os.Exit(1)
	}

	loc := model.GeographicLocation{LatitudeDeg: *lat, LongitudeDeg: *lon}
	sess, err := session.New(session.Config{
		Location: loc,
		Solver:   core.SolverConfig{EnableTilt: *tilt},
	}, stars48, session.WithLogger(log), session.WithMetrics(collector))
	if err != nil {
		log.Error(ctx, "failed to create session", logging.Err(err))
		os.Exit(1)
	}

	now := time.Now().UTC()

	// Pick alignment stars: the widest-spread visible triple, or simply
	// the highest stars when fewer than three are requested.
	suitable, err := core.SuitableStars(stars48.Objects(), loc, now, 0)
	if err != nil {
		log.Error(ctx, "failed to evaluate alignment stars", logging.Err(err))
		os.Exit(1)
	}
	if len(suitable) == 0 {
		log.Error(ctx, "no suitable alignment stars above the horizon")
		os.Exit(1)
	}

	var chosen []core.AlignmentCandidate
	if *stars >= 3 {
		if triples := core.BestTriples(suitable, 1); len(triples) > 0 {
			chosen = triples[0].Stars[:]
		}
	}
	if chosen == nil {
		n := *stars
		if n < 1 {
			n = 1
		}
		if n > len(suitable) {
			n = len(suitable)
		}
		chosen = suitable[:n]
	}

	// The simulated mount: its encoders disagree with the sky by the
	// hidden offsets; the alignment below has to recover them.
	sim := mount.NewSimulatedMount(*hiddenAlt, *hiddenAz,
		mount.WithNoise(*noise, 1),
	)

	var observations []session.AlignmentObservation
	for _, cand := range chosen {
		sim.PointAt(cand.Position)
		reading, at := sim.Sample()
		observations = append(observations, session.AlignmentObservation{
			Encoder: reading,
			Object:  cand.Object.Name,
			Instant: at,
		})
		log.Info(ctx, "captured alignment star",
			logging.String("object", cand.Object.Name),
			logging.Float64("alt_deg", cand.Position.AltDeg),
			logging.Float64("az_deg", cand.Position.AzDeg),
		)
	}

	sol, err := sess.AlignWith(ctx, observations)
	if err != nil {
		log.Error(ctx, "alignment failed", logging.Err(err))
		os.Exit(1)
	}
	for _, r := range sol.Residuals {
		log.Info(ctx, "alignment residual",
			logging.String("object", r.Object),
			logging.Float64("separation_deg", r.SeparationDeg),
		)
	}

	// Satellite handoff: where would the mount slew to catch the ISS?
	if iss, err := track.NewSatelliteTarget("ISS", issTLE1, issTLE2); err == nil {
		if hc, rangeKm, err := iss.LookAngles(loc, now); err == nil && hc.AltDeg > 0 {
			if target, err := sess.SlewTo(ctx, hc); err == nil {
				log.Info(ctx, "satellite above horizon",
					logging.String("object", iss.Name()),
					logging.Float64("alt_deg", hc.AltDeg),
					logging.Float64("az_deg", hc.AzDeg),
					logging.Float64("range_km", rangeKm),
					logging.Float64("alt_axis_deg", target.AltAxisDeg),
					logging.Float64("az_axis_deg", target.AzAxisDeg),
				)
			}
		}
	}

	// Track the best star for the demo duration: the mount follows the
	// sky while the poll loop checks the solved model against truth.
	target := chosen[0]
	sim.AddListener(func(reading model.EncoderReading, at time.Time) {
		truth, err := sess.PredictPosition(ctx, target.Object.Name, at)
		if err != nil {
			return
		}
		sim.PointAt(truth)

		got, err := sess.CurrentPointing(ctx, reading)
		if err != nil {
			return
		}
		fields := []logging.Field{
			logging.String("object", target.Object.Name),
			logging.Float64("pointing_alt_deg", got.AltDeg),
			logging.Float64("pointing_az_deg", got.AzDeg),
			logging.Float64("error_deg", core.SeparationDeg(
				truth.AltDeg, truth.AzDeg, got.AltDeg, got.AzDeg)),
		}
		if eq, err := sess.CurrentEquatorial(ctx, reading, at); err == nil {
			fields = append(fields,
				logging.Float64("ra_hours", eq.RAHours),
				logging.Float64("dec_deg", eq.DecDeg),
			)
		}
		log.Info(ctx, "tracking", fields...)
	})

	sim.PointAt(target.Position)
	<-sim.Poll(*interval, *duration)

	log.Info(ctx, "pointing simulation finished")
}

func serveMetrics(addr string, collector *observability.PointingCollector, log logging.Logger) *http.Server {
	if collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.Err(err))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
