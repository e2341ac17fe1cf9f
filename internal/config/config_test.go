package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validTestConfig() *Config {
	return &Config{
		Port:          "8080",
		JWTSecret:     "secure-secret-at-least-32-chars-long",
		TokenTTL:      168 * time.Hour,
		BcryptCost:    12,
		MaxUploadSize: 5 * 1024 * 1024,
		DBPassword:    "secure-password",
		DBSSLMode:     "require",
		Env:           "development",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid development config", func(c *Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing JWT secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"Zero token TTL", func(c *Config) { c.TokenTTL = 0 }, true},
		{"Negative token TTL", func(c *Config) { c.TokenTTL = -time.Hour }, true},
		{"Bcrypt cost too low", func(c *Config) { c.BcryptCost = 4 }, true},
		{"Bcrypt cost too high", func(c *Config) { c.BcryptCost = 32 }, true},
		{"Zero upload size", func(c *Config) { c.MaxUploadSize = 0 }, true},
		{"Production with default secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"Production with short secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "short"
		}, true},
		{"Production with weak DB password", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, true},
		{"Valid production config", func(c *Config) { c.Env = "production" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validTestConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	assert.True(t, (&Config{Env: "production"}).IsProduction())
	assert.True(t, (&Config{Env: "prod"}).IsProduction())
	assert.False(t, (&Config{Env: "development"}).IsProduction())
	assert.False(t, (&Config{Env: "test"}).IsProduction())
}

func TestConfig_AllowedMIMETypes(t *testing.T) {
	c := &Config{AllowedTypes: "image/jpeg, image/png,image/gif , image/webp"}
	types := c.AllowedMIMETypes()
	assert.Equal(t, []string{"image/jpeg", "image/png", "image/gif", "image/webp"}, types)

	empty := &Config{AllowedTypes: ""}
	assert.Empty(t, empty.AllowedMIMETypes())
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.NotEmpty(t, cfg.Port)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxUploadSize)
	assert.Equal(t, 168*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.True(t, strings.Contains(cfg.AllowedTypes, "image/jpeg"))
}
