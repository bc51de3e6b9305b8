package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseConfig() *Config {
	return &Config{
		JWTSecret:  "a-development-secret",
		Port:       "8460",
		DBPassword: "password",
		Env:        "development",
	}
}

func TestValidateDevelopmentDefaults(t *testing.T) {
	assert.NoError(t, baseConfig().Validate())
}

func TestValidateRequiresPort(t *testing.T) {
	cfg := baseConfig()
	cfg.Port = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRequiresJWTSecret(t *testing.T) {
	cfg := baseConfig()
	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateProductionRejectsDefaultSecret(t *testing.T) {
	cfg := baseConfig()
	cfg.Env = "production"
	cfg.JWTSecret = "your-secret-key-change-in-production"
	cfg.DBPassword = "something-strong"
	assert.Error(t, cfg.Validate())
}

func TestValidateProductionRejectsShortSecret(t *testing.T) {
	cfg := baseConfig()
	cfg.Env = "production"
	cfg.JWTSecret = "short-secret"
	cfg.DBPassword = "something-strong"
	assert.Error(t, cfg.Validate())
}

func TestValidateProductionRejectsWeakDBPassword(t *testing.T) {
	cfg := baseConfig()
	cfg.Env = "production"
	cfg.JWTSecret = "a-secret-that-is-at-least-32-characters-long"
	cfg.DBPassword = "password"
	assert.Error(t, cfg.Validate())
}

func TestValidateProductionAcceptsStrongValues(t *testing.T) {
	cfg := baseConfig()
	cfg.Env = "production"
	cfg.JWTSecret = "a-secret-that-is-at-least-32-characters-long"
	cfg.DBPassword = "s0mething-ver7-strong"
	cfg.DBSSLMode = "require"
	assert.NoError(t, cfg.Validate())
}
