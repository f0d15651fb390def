// Package config holds the configuration sections shared by services: each section is loaded by
// configloader from koanf, prints itself for the startup log and validates its own values.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Section renders a titled block of key/value lines for the startup configuration dump.
type Section struct {
	b strings.Builder
}

func NewSection(title string) *Section {
	s := &Section{}
	fmt.Fprintf(&s.b, "\n--- %s ---\n", title)
	return s
}

// Add appends one key/value line and returns s for chaining.
func (s *Section) Add(key string, value any) *Section {
	fmt.Fprintf(&s.b, "  %s: %v\n", key, value)
	return s
}

func (s *Section) String() string {
	return s.b.String()
}

// ErrNotConfigured marks a required setting that is empty.
var ErrNotConfigured = errors.New("not configured")

func required(key, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s: %w", key, ErrNotConfigured)
	}
	return nil
}

func positiveDuration(key string, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%s must be greater than 0, got %v", key, d)
	}
	return nil
}

func validPort(key string, port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535, got %d", key, port)
	}
	return nil
}
