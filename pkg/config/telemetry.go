package config

import "time"

type TelemetryConfig struct {
	Enabled bool         `koanf:"enabled"`
	Traces  TracesConfig `koanf:"traces"`
}

type TracesConfig struct {
	OtlpHttp OtlpHttpConfig `koanf:"otlphttp"`
}

// OtlpHttpConfig points the trace exporter at an OTLP/HTTP collector.
type OtlpHttpConfig struct {
	Endpoint string        `koanf:"endpoint"`
	Insecure bool          `koanf:"insecure"`
	Timeout  time.Duration `koanf:"timeout"`
}

func (c *TelemetryConfig) String() string {
	return NewSection("Telemetry").
		Add("enabled", c.Enabled).
		Add("traces.otlphttp.endpoint", c.Traces.OtlpHttp.Endpoint).
		Add("traces.otlphttp.insecure", c.Traces.OtlpHttp.Insecure).
		Add("traces.otlphttp.timeout", c.Traces.OtlpHttp.Timeout).
		String()
}

func (c *TelemetryConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if err := required("telemetry.traces.otlphttp.endpoint", c.Traces.OtlpHttp.Endpoint); err != nil {
		return err
	}
	return positiveDuration("telemetry.traces.otlphttp.timeout", c.Traces.OtlpHttp.Timeout)
}
