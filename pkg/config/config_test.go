package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "biketrax.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `{
		"username": "rider@example.com",
		"password": "hunter2",
		"refresh_interval": "90s",
		"logging": {"level": "debug"}
	}`)

	var cfg Config

	require.NoError(t, LoadFile(context.Background(), path, &cfg))

	assert.Equal(t, "rider@example.com", cfg.Username)
	assert.Equal(t, "hunter2", cfg.Password)
	assert.Equal(t, 90*time.Second, time.Duration(cfg.RefreshInterval))
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFileAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `{"username": "rider@example.com", "password": "hunter2"}`)

	var cfg Config

	require.NoError(t, LoadFile(context.Background(), path, &cfg))
	assert.Equal(t, time.Minute, time.Duration(cfg.RefreshInterval))
}

func TestLoadFileEnvOverrides(t *testing.T) {
	t.Setenv("BIKETRAX_USERNAME", "env@example.com")
	t.Setenv("BIKETRAX_PASSWORD", "envpass")

	path := writeConfig(t, `{"username": "file@example.com", "password": "filepass"}`)

	var cfg Config

	require.NoError(t, LoadFile(context.Background(), path, &cfg))
	assert.Equal(t, "env@example.com", cfg.Username)
	assert.Equal(t, "envpass", cfg.Password)
}

func TestLoadFileValidation(t *testing.T) {
	t.Setenv("BIKETRAX_USERNAME", "")
	t.Setenv("BIKETRAX_PASSWORD", "")

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"missing username", `{"password": "hunter2"}`, ErrUsernameRequired},
		{"missing password", `{"username": "rider@example.com"}`, ErrPasswordRequired},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var cfg Config

			err := LoadFile(context.Background(), writeConfig(t, tc.content), &cfg)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestLoadFileMissingFile(t *testing.T) {
	var cfg Config

	err := LoadFile(context.Background(), "/nonexistent/biketrax.json", &cfg)
	require.Error(t, err)
}

func TestDurationUnmarshal(t *testing.T) {
	var cfg Config

	path := writeConfig(t, `{"username": "a", "password": "b", "refresh_interval": 5000000000}`)
	require.NoError(t, LoadFile(context.Background(), path, &cfg))
	assert.Equal(t, 5*time.Second, time.Duration(cfg.RefreshInterval))

	path = writeConfig(t, `{"username": "a", "password": "b", "refresh_interval": "nope"}`)
	require.Error(t, LoadFile(context.Background(), path, &cfg))
}
