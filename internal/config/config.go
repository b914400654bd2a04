// Package config reads the demo binary's settings from the environment,
// the same envconfig-driven pattern the retrieval pack's services use for
// their own configuration loading.
package config

import "github.com/kelseyhightower/envconfig"

// Config holds the settings cmd/sdjwtdemo needs to issue and verify a
// sample credential.
type Config struct {
	HashAlg    string `envconfig:"SDJWT_HASH_ALG" default:"sha-256"`
	DecoyCount int    `envconfig:"SDJWT_DECOY_COUNT" default:"2"`
	Production bool   `envconfig:"SDJWT_PRODUCTION_LOGGING" default:"false"`
}

// New reads Config from the process environment, applying the defaults
// above when a variable is unset.
func New() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
