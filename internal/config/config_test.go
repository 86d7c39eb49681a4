package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfig_ValidateProduction(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		jwtSecret   string
		dbPassword  string
		sslMode     string
		expectError bool
	}{
		{"Production with default JWT secret", "production", "your-secret-key-change-in-production", "strongpw", "require", true},
		{"Production with short JWT secret", "production", "short", "strongpw", "require", true},
		{"Production with default DB password", "production", "secure-secret-at-least-32-chars-long", "password", "require", true},
		{"Production with disabled SSL", "prod", "secure-secret-at-least-32-chars-long", "strongpw", "disable", true},
		{"Production fully configured", "production", "secure-secret-at-least-32-chars-long", "strongpw", "verify-full", false},
		{"Development with defaults", "development", "your-secret-key-change-in-production", "password", "disable", false},
		{"Test env with defaults", "test", "your-secret-key-change-in-production", "password", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				Env:        tt.env,
				JWTSecret:  tt.jwtSecret,
				DBPassword: tt.dbPassword,
				DBSSLMode:  tt.sslMode,
				Port:       "8080",
			}

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateRequiredFields(t *testing.T) {
	c := &Config{JWTSecret: "secret"}
	assert.Error(t, c.Validate(), "missing PORT should fail")

	c = &Config{Port: "8080"}
	assert.Error(t, c.Validate(), "missing JWT_SECRET should fail")
}

func TestLoadConfig_Normalization(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("DB_SSLMODE")
	defer os.Unsetenv("MEDIA_BASE_URL")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")
	os.Setenv("DB_SSLMODE", "  DISABLE  ")
	os.Setenv("MEDIA_BASE_URL", "https://cdn.example.com/media/ ")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, "https://cdn.example.com/media", c.MediaBaseURL)
}
