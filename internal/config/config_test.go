package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL())
	assert.Equal(t, []byte("test-secret"), cfg.SessionKey())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_UnsupportedDriver(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	assert.Error(t, err)
}

func TestConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected string
	}{
		{
			name: "postgres",
			cfg: Config{DBDriver: "postgres", DBHost: "db", DBPort: "5432", DBUser: "u",
				DBPassword: "p", DBName: "tasks", DBSSLMode: "disable"},
			expected: "host=db port=5432 user=u password=p dbname=tasks sslmode=disable TimeZone=UTC",
		},
		{
			name:     "mysql",
			cfg:      Config{DBDriver: "mysql", DBHost: "db", DBPort: "3306", DBUser: "u", DBPassword: "p", DBName: "tasks"},
			expected: "u:p@tcp(db:3306)/tasks?charset=utf8mb4&parseTime=True&loc=UTC",
		},
		{
			name:     "sqlite",
			cfg:      Config{DBDriver: "sqlite", DBName: "tasks.db"},
			expected: "tasks.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.DSN())
		})
	}
}

func TestConfig_SessionKeyPrefersSessionSecret(t *testing.T) {
	cfg := Config{SecretKey: "token", SessionSecret: "session"}
	assert.Equal(t, []byte("session"), cfg.SessionKey())
}
