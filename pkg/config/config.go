// Package config loads the JSON configuration file for the biketrax CLI.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/vlebourl/custom-biketrax/pkg/logger"
)

const defaultRefreshInterval = time.Minute

var (
	// ErrUsernameRequired indicates the config carries no account username.
	ErrUsernameRequired = errors.New("username is required")
	// ErrPasswordRequired indicates the config carries no account password.
	ErrPasswordRequired = errors.New("password is required")
)

// Duration is a time.Duration that unmarshals from "1m30s" strings or
// nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}

		*d = Duration(dur)

		return nil
	default:
		return fmt.Errorf("invalid duration value: %v", v)
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config is the biketrax CLI configuration.
type Config struct {
	Username string `json:"username"`
	Password string `json:"password"`

	// Endpoint overrides, empty for production defaults.
	IdentityEndpoint string `json:"identity_endpoint,omitempty"`
	DeviceEndpoint   string `json:"device_endpoint,omitempty"`
	AdminEndpoint    string `json:"admin_endpoint,omitempty"`

	// RefreshInterval is the pull refresh cadence, default one minute.
	RefreshInterval Duration `json:"refresh_interval,omitempty"`

	Logging logger.Config `json:"logging"`
}

// Validate implements the post-load sanity check.
func (c *Config) Validate() error {
	if c.Username == "" {
		return ErrUsernameRequired
	}

	if c.Password == "" {
		return ErrPasswordRequired
	}

	return nil
}

// LoadFile reads a JSON config file, applies BIKETRAX_USERNAME and
// BIKETRAX_PASSWORD overrides from the environment, fills defaults and
// validates the result.
func LoadFile(_ context.Context, path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to unmarshal JSON from '%s': %w", path, err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	return cfg.Validate()
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BIKETRAX_USERNAME"); v != "" {
		cfg.Username = v
	}

	if v := os.Getenv("BIKETRAX_PASSWORD"); v != "" {
		cfg.Password = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = Duration(defaultRefreshInterval)
	}
}
