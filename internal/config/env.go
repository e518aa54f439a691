package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Env is the TRYON_* environment. Unset variables leave the file values
// alone.
type Env struct {
	Theme    string `envconfig:"THEME"`
	Catalog  string `envconfig:"CATALOG"`
	Locale   string `envconfig:"LOCALE"`
	SaveDir  string `envconfig:"SAVE_DIR"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadEnv reads the TRYON_* variables.
func LoadEnv() (*Env, error) {
	var e Env
	if err := envconfig.Process("tryon", &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// ApplyEnv overlays the non-empty environment values on c.
func (c *Config) ApplyEnv(e *Env) {
	if e == nil {
		return
	}
	if e.Theme != "" {
		c.Theme = e.Theme
	}
	if e.Catalog != "" {
		c.Catalog = e.Catalog
	}
	if e.Locale != "" {
		c.Locale = e.Locale
	}
	if e.SaveDir != "" {
		c.SaveDir = e.SaveDir
	}
}
