package observability

import (
	"context"
	"testing"
)

func TestTracingConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("POINTING_TRACING_ENABLED", "")
	t.Setenv("POINTING_TRACING_EXPORTER", "")
	t.Setenv("POINTING_TRACING_SERVICE_NAME", "")
	t.Setenv("POINTING_TRACING_SAMPLE_RATIO", "")
	t.Setenv("POINTING_OTLP_ENDPOINT", "")

	cfg := TracingConfigFromEnv()
	if cfg.Enabled {
		t.Error("tracing enabled by default")
	}
	if cfg.Exporter != "stdout" || cfg.ServiceName != "pointing-engine" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.SampleRatio != 1.0 {
		t.Errorf("sample ratio = %v, want 1", cfg.SampleRatio)
	}
}

func TestTracingConfigFromEnvOverrides(t *testing.T) {
	t.Setenv("POINTING_TRACING_ENABLED", "TRUE")
	t.Setenv("POINTING_TRACING_EXPORTER", "OTLP")
	t.Setenv("POINTING_TRACING_SERVICE_NAME", "mount-A")
	t.Setenv("POINTING_TRACING_SAMPLE_RATIO", "0.25")
	t.Setenv("POINTING_OTLP_ENDPOINT", "collector:4317")

	cfg := TracingConfigFromEnv()
	if !cfg.Enabled || cfg.Exporter != "otlp" || cfg.ServiceName != "mount-A" {
		t.Errorf("overrides = %+v", cfg)
	}
	if cfg.SampleRatio != 0.25 || cfg.Endpoint != "collector:4317" {
		t.Errorf("overrides = %+v", cfg)
	}
}

func TestTracingConfigFromEnvBadRatioIgnored(t *testing.T) {
	t.Setenv("POINTING_TRACING_SAMPLE_RATIO", "nope")
	if got := TracingConfigFromEnv().SampleRatio; got != 1.0 {
		t.Errorf("sample ratio = %v, want fallback 1", got)
	}
	t.Setenv("POINTING_TRACING_SAMPLE_RATIO", "2.5")
	if got := TracingConfigFromEnv().SampleRatio; got != 1.0 {
		t.Errorf("out-of-range ratio = %v, want fallback 1", got)
	}
}

func TestInitTracingDisabled(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), TracingConfig{Enabled: false}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("noop shutdown returned %v", err)
	}
}

func TestInitTracingRejectsUnknownExporter(t *testing.T) {
	_, err := InitTracing(context.Background(), TracingConfig{
		Enabled:  true,
		Exporter: "jaeger-thrift",
	}, nil)
	if err == nil {
		t.Fatal("unknown exporter accepted")
	}
}
