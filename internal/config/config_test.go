package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stolasapp/courseware/internal/storage/db"
)

// These tests mutate the process environment and cannot run in parallel.

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"HOST", "PORT", "LOG_LEVEL", "LOG_FORMAT", "DEV_MODE", "ENABLE_GLOBAL_ERROR_LOGGING",
		"API_PREFIX", "CORS_ORIGINS", "DATABASE_DRIVER", "DATABASE_DSN",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, ":5000", cfg.Address())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.LogFormat)
	assert.False(t, cfg.DevMode)
	assert.False(t, cfg.GlobalErrorLogging)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, db.DialectSQLite, cfg.Database.Driver)
	assert.Equal(t, DefaultSQLitePath(), cfg.Database.DSN)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected func(*Config)
	}{
		{
			name:    "port",
			envVars: map[string]string{"HOST": "127.0.0.1", "PORT": "8080"},
			expected: func(cfg *Config) {
				assert.Equal(t, "127.0.0.1:8080", cfg.Address())
			},
		},
		{
			name:    "error logging",
			envVars: map[string]string{"ENABLE_GLOBAL_ERROR_LOGGING": "true"},
			expected: func(cfg *Config) {
				assert.True(t, cfg.GlobalErrorLogging)
			},
		},
		{
			name: "postgres",
			envVars: map[string]string{
				"DATABASE_DRIVER": "postgres",
				"DATABASE_DSN":    "postgres://localhost/courseware",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, db.DialectPostgres, cfg.Database.Driver)
				assert.Equal(t, "postgres://localhost/courseware", cfg.Database.DSN)
			},
		},
		{
			name:    "prefix is normalized",
			envVars: map[string]string{"API_PREFIX": "v1/"},
			expected: func(cfg *Config) {
				assert.Equal(t, "/v1", cfg.APIPrefix)
			},
		},
		{
			name:    "root prefix",
			envVars: map[string]string{"API_PREFIX": "/"},
			expected: func(cfg *Config) {
				assert.Empty(t, cfg.APIPrefix)
			},
		},
		{
			name:    "cors origins",
			envVars: map[string]string{"CORS_ORIGINS": "http://localhost:3000,https://example.com"},
			expected: func(cfg *Config) {
				assert.Equal(t, []string{"http://localhost:3000", "https://example.com"}, cfg.CORSOrigins)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for key, value := range test.envVars {
				t.Setenv(key, value)
			}
			cfg, err := Load()
			require.NoError(t, err)
			test.expected(cfg)
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr string
	}{
		{
			name:    "non numeric port",
			envVars: map[string]string{"PORT": "http"},
			wantErr: "failed to parse config",
		},
		{
			name:    "port out of range",
			envVars: map[string]string{"PORT": "70000"},
			wantErr: "port 70000 out of range",
		},
		{
			name:    "unknown driver",
			envVars: map[string]string{"DATABASE_DRIVER": "mysql", "DATABASE_DSN": "x"},
			wantErr: `unsupported database driver "mysql"`,
		},
		{
			name:    "postgres without dsn",
			envVars: map[string]string{"DATABASE_DRIVER": "postgres", "DATABASE_DSN": ""},
			wantErr: "database dsn is required",
		},
		{
			name:    "log format",
			envVars: map[string]string{"LOG_FORMAT": "xml"},
			wantErr: `unsupported log format "xml"`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for key, value := range test.envVars {
				t.Setenv(key, value)
			}
			cfg, err := Load()
			require.ErrorContains(t, err, test.wantErr)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	// registered so the values written by the env file are restored
	t.Setenv("PORT", "5000")
	t.Setenv("DATABASE_DSN", "")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=6000\nDATABASE_DSN=/tmp/courseware.sqlite\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6000, cfg.Port)
	assert.Equal(t, "/tmp/courseware.sqlite", cfg.Database.DSN)
}

func TestLoad_EnvFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.ErrorContains(t, err, "failed to load env file")
	assert.Nil(t, cfg)
}
