package runtimeconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces every environment variable read by LoadEnv.
const EnvPrefix = "COOPSITE_"

// LoadFile overlays the YAML document at path onto base. Keys missing from
// the file keep their base values.
func LoadFile(path string, base Config) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config %s: %w", path, err)
	}
	return Decode(raw, base)
}

// Decode overlays a YAML document onto base. Unknown keys are rejected.
func Decode(raw []byte, base Config) (Config, error) {
	cfg := base
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// LoadEnv overlays COOPSITE_* environment variables onto base.
func LoadEnv(base Config) (Config, error) {
	return LoadEnvFrom(nil, base)
}

// LoadEnvFrom behaves like LoadEnv but reads from environ when non-nil.
func LoadEnvFrom(environ map[string]string, base Config) (Config, error) {
	cfg := base
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return base, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Load resolves defaults, then the optional file, then the environment, and
// validates the result.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	var err error
	if path != "" {
		if cfg, err = LoadFile(path, cfg); err != nil {
			return cfg, err
		}
	}
	if cfg, err = LoadEnv(cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
