package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "projects_fot.db", cfg.DBPath)
	assert.Equal(t, []string{"test@example.com"}, cfg.EmailTo)
	assert.Equal(t, 1, cfg.RetryCount)
	assert.Equal(t, 5*time.Minute, cfg.RetryDelay)

	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("EMAIL_TO", "a@example.com, b@example.com")
	t.Setenv("RETRY_DELAY", "30s")
	t.Setenv("DATA_DIR", "/srv/fot")

	cfg := Load()

	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.EmailTo)
	assert.Equal(t, 30*time.Second, cfg.RetryDelay)
	assert.Equal(t, "/srv/fot/employees.csv", cfg.EmployeesFile)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{"defaults are valid", func(cfg *Config) {}, false},
		{"bad recipient", func(cfg *Config) { cfg.EmailTo = []string{"not-an-email"} }, true},
		{"no recipients", func(cfg *Config) { cfg.EmailTo = nil }, true},
		{"unknown driver", func(cfg *Config) { cfg.DBDriver = "postgres" }, true},
		{"mysql requires dsn", func(cfg *Config) { cfg.DBDriver = "mysql"; cfg.MySQLDSN = "" }, true},
		{"negative retries", func(cfg *Config) { cfg.RetryCount = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
