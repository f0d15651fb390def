package config

import "time"

type HTTPConfig struct {
	Port           int `koanf:"port"`
	MaxHeaderBytes int `koanf:"maxHeaderBytes"`
	Timeout        struct {
		Read       time.Duration `koanf:"read"`
		Write      time.Duration `koanf:"write"`
		Idle       time.Duration `koanf:"idle"`
		ReadHeader time.Duration `koanf:"readHeader"`
	} `koanf:"timeout"`
}

func (c *HTTPConfig) String() string {
	return NewSection("HTTP Server").
		Add("port", c.Port).
		Add("maxHeaderBytes", c.MaxHeaderBytes).
		Add("timeout.read", c.Timeout.Read).
		Add("timeout.write", c.Timeout.Write).
		Add("timeout.idle", c.Timeout.Idle).
		Add("timeout.readHeader", c.Timeout.ReadHeader).
		String()
}

func (c *HTTPConfig) Validate() error {
	if err := validPort("server.port", c.Port); err != nil {
		return err
	}
	for key, d := range map[string]time.Duration{
		"server.timeout.read":       c.Timeout.Read,
		"server.timeout.write":      c.Timeout.Write,
		"server.timeout.idle":       c.Timeout.Idle,
		"server.timeout.readHeader": c.Timeout.ReadHeader,
	} {
		if err := positiveDuration(key, d); err != nil {
			return err
		}
	}
	return nil
}
