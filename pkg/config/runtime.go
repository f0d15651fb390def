package config

import (
	"fmt"
	"time"
)

// PProfConfig exposes net/http/pprof on a separate listener.
type PProfConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

func (c *PProfConfig) String() string {
	return NewSection("PProf").Add("enabled", c.Enabled).Add("address", c.Addr).String()
}

func (c *PProfConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	return required("pprof.addr", c.Addr)
}

// ShutdownConfig bounds how long each server may take to drain.
type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

func (c *ShutdownConfig) String() string {
	return NewSection("Shutdown").Add("timeout", c.Timeout).String()
}

func (c *ShutdownConfig) Validate() error {
	return positiveDuration("shutdown.timeout", c.Timeout)
}

// ResilienceConfig tunes the circuit breaker in front of the event publisher.
type ResilienceConfig struct {
	CircuitBreaker CircuitBreakerConfig `koanf:"circuitbreaker"`
}

// CircuitBreakerConfig trips after ConsecutiveFailures failures in a row, or when the failure rate
// reaches ErrorRatePercent, and stays open for OpenTimeout.
type CircuitBreakerConfig struct {
	ConsecutiveFailures uint32        `koanf:"consecutivefailures"`
	ErrorRatePercent    int           `koanf:"errorratepercent"`
	OpenTimeout         time.Duration `koanf:"opentimeout"`
}

func (c *ResilienceConfig) String() string {
	cb := c.CircuitBreaker
	return NewSection("Circuit Breaker").
		Add("consecutivefailures", cb.ConsecutiveFailures).
		Add("errorratepercent", cb.ErrorRatePercent).
		Add("opentimeout", cb.OpenTimeout).
		String()
}

func (c *ResilienceConfig) Validate() error {
	cb := c.CircuitBreaker
	if cb.ConsecutiveFailures == 0 {
		return fmt.Errorf("resilience.circuitbreaker.consecutivefailures must be greater than 0")
	}
	if cb.ErrorRatePercent < 0 || cb.ErrorRatePercent > 100 {
		return fmt.Errorf("resilience.circuitbreaker.errorratepercent must be between 0 and 100, got %d", cb.ErrorRatePercent)
	}
	return positiveDuration("resilience.circuitbreaker.opentimeout", cb.OpenTimeout)
}
