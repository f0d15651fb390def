package config

import "time"

// NATSConfig enables JetStream event publishing. When disabled events are only logged.
type NATSConfig struct {
	Enabled bool          `koanf:"enabled"`
	Url     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
	Stream  string        `koanf:"stream"`
}

func (c *NATSConfig) String() string {
	return NewSection("NATS").
		Add("enabled", c.Enabled).
		Add("url", c.Url).
		Add("timeout", c.Timeout).
		Add("stream", c.Stream).
		String()
}

func (c *NATSConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if err := required("nats.url", c.Url); err != nil {
		return err
	}
	if err := positiveDuration("nats.timeout", c.Timeout); err != nil {
		return err
	}
	return required("nats.stream", c.Stream)
}
