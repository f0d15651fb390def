package config

import (
	"fmt"
	"strings"
	"time"
)

type DatabaseConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
	// Migrate applies the embedded schema migrations before the pool is opened.
	Migrate bool `koanf:"migrate"`
}

// String masks the credentials of the connection URL.
func (c *DatabaseConfig) String() string {
	return NewSection("Database").
		Add("url", MaskURL(c.URL)).
		Add("timeout", c.Timeout).
		Add("migrate", c.Migrate).
		String()
}

func (c *DatabaseConfig) Validate() error {
	if err := required("database.url", c.URL); err != nil {
		return err
	}
	if !strings.HasPrefix(c.URL, "postgres://") && !strings.HasPrefix(c.URL, "postgresql://") {
		return fmt.Errorf("database.url must use the postgres:// scheme: %s", MaskURL(c.URL))
	}
	return positiveDuration("database.timeout", c.Timeout)
}

// MaskURL replaces everything before the last '@' of a connection URL with "****".
func MaskURL(url string) string {
	if url == "" {
		return "<not configured>"
	}
	if i := strings.LastIndex(url, "@"); i >= 0 {
		return "****" + url[i:]
	}
	return "****"
}
