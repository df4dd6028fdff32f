package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// Settings holds the ambient client options. None of them change which
// relay the client talks to.
type Settings struct {
	Env           string `yaml:"env" env-default:"prod"`
	GUIAddr       string `yaml:"gui_addr" env-default:"127.0.0.1:5173"`
	ViewportLines int    `yaml:"viewport_lines" env-default:"20"`
}

// Load reads settings from the YAML file at path. An empty path yields the defaults.
func Load(path string) (*Settings, error) {
	var cfg Settings

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("apply defaults: %w", err)
		}
		return cfg.checked()
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg.checked()
}

// checked hands out cfg only when it is valid.
func (s *Settings) checked() (*Settings, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) validate() error {
	switch s.Env {
	case EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown env %q", s.Env)
	}
	if s.ViewportLines <= 0 {
		return errors.New("viewport_lines must be positive")
	}
	return nil
}
