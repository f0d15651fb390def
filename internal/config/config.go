package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/storeadmin/pkg/config"
	"github.com/abgdnv/storeadmin/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

type Config struct {
	HTTPServer config.HTTPConfig       `koanf:"server"`
	Store      StoreConfig             `koanf:"store"`
	Database   config.DatabaseConfig   `koanf:"database"`
	Log        config.LogConfig        `koanf:"log"`
	PProf      config.PProfConfig      `koanf:"pprof"`
	GRPC       config.GrpcServerConfig `koanf:"grpc"`
	NATS       config.NATSConfig       `koanf:"nats"`
	Resilience config.ResilienceConfig `koanf:"resilience"`
	Telemetry  config.TelemetryConfig  `koanf:"telemetry"`
	Shutdown   config.ShutdownConfig   `koanf:"shutdown"`
	Import     ImportConfig            `koanf:"import"`
}

// StoreConfig selects the storage backend.
type StoreConfig struct {
	Driver string `koanf:"driver"`
}

// ImportConfig limits the size of uploaded CSV bodies.
type ImportConfig struct {
	MaxBytes int64 `koanf:"maxBytes"`
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString(c.HTTPServer.String())

	b.WriteString(config.NewSection("Store").Add("driver", c.Store.Driver).String())
	if c.Store.Driver == StoreDriverPostgres {
		b.WriteString(c.Database.String())
	}

	b.WriteString(c.GRPC.String())
	b.WriteString(c.NATS.String())
	b.WriteString(c.Resilience.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Shutdown.String())

	b.WriteString(config.NewSection("Import").Add("maxBytes", c.Import.MaxBytes).String())

	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.HTTPServer.Validate(); err != nil {
		return err
	}
	switch c.Store.Driver {
	case StoreDriverMemory:
	case StoreDriverPostgres:
		if err := c.Database.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported store driver: %q", c.Store.Driver)
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.PProf.Validate(); err != nil {
		return err
	}
	if err := c.GRPC.Validate(); err != nil {
		return err
	}
	if err := c.NATS.Validate(); err != nil {
		return err
	}
	if err := c.Resilience.Validate(); err != nil {
		return err
	}
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	if err := c.Shutdown.Validate(); err != nil {
		return err
	}
	if c.Import.MaxBytes <= 0 {
		return fmt.Errorf("import.maxBytes must be greater than 0")
	}
	return nil
}
