// Package configloader loads service configuration from a YAML file, a .env file and the process environment.
package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Validator interface {
	Validate() error
}

// Options controls where the loader looks for its sources.
// Zero values fall back to config.yaml and .env in the working directory.
type Options struct {
	ConfigFile string
	EnvFile    string
}

func (o Options) withDefaults() Options {
	if o.ConfigFile == "" {
		o.ConfigFile = "config.yaml"
	}
	if o.EnvFile == "" {
		o.EnvFile = ".env"
	}
	return o
}

// Load reads configuration for the given service.
// Sources are applied in increasing priority: YAML file, .env file, process environment.
// Environment variables are expected as <SERVICE_NAME>_<SECTION>_<KEY>, e.g. ADMIN_SERVER_PORT.
// Missing files are skipped; unreadable or malformed ones are an error.
func Load[T Validator](serviceName string) (T, error) {
	return LoadWithOptions[T](serviceName, Options{})
}

// LoadWithOptions is Load with explicit source locations.
func LoadWithOptions[T Validator](serviceName string, opts Options) (T, error) {
	var cfg T
	opts = opts.withDefaults()
	k := koanf.New(".")
	keyOf := envKeyMapper(serviceName)

	if err := loadYAML(k, opts.ConfigFile); err != nil {
		return cfg, err
	}

	dotenv, err := godotenv.Read(opts.EnvFile)
	switch {
	case err == nil:
		values := make(map[string]any, len(dotenv))
		for key, value := range dotenv {
			values[keyOf(key)] = value
		}
		if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
			return cfg, fmt.Errorf("failed to load %s: %w", opts.EnvFile, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return cfg, fmt.Errorf("failed to read %s: %w", opts.EnvFile, err)
	}

	if err := k.Load(env.Provider(envPrefix(serviceName), ".", keyOf), nil); err != nil {
		return cfg, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadYAML merges the YAML file into k with every key lower-cased, so that env keys produced by
// envKeyMapper (import.maxbytes) override camelCase YAML keys (import.maxBytes) instead of sitting
// next to them.
func loadYAML(k *koanf.Koanf, path string) error {
	raw := koanf.New(".")
	if err := raw.Load(file.Provider(path), yaml.Parser()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	values := make(map[string]any, len(raw.Keys()))
	for key, value := range raw.All() {
		values[strings.ToLower(key)] = value
	}
	if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func envPrefix(serviceName string) string {
	return strings.ToUpper(serviceName) + "_"
}

// envKeyMapper maps ADMIN_SERVER_PORT to server.port. All loaded keys are lower-case;
// decoding matches them against camelCase koanf tags such as maxBytes ignoring case.
func envKeyMapper(serviceName string) func(string) string {
	prefix := strings.ToLower(envPrefix(serviceName))
	return func(key string) string {
		key = strings.TrimPrefix(strings.ToLower(key), prefix)
		return strings.ReplaceAll(key, "_", ".")
	}
}
