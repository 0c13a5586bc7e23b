package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/offerwall/config"
)

func newViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))
	return v
}

const validYAML = `
server:
  port: "9090"
source:
  kind: http
  baseURL: https://backend.example.com/api
  timeout: 5s
approval:
  ttl: 5m
  pollInterval: 30s
session:
  signingSecret: local-secret
  jwksTimeout: 5s
redis:
  addr: localhost:6379
ratelimit:
  requests: 50
  duration: 1m
`

func TestLoad(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		cfg, err := config.Load(newViper(t, validYAML))
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, "https://backend.example.com/api", cfg.Source.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.Source.Timeout)
		assert.Equal(t, 5*time.Minute, cfg.Approval.TTL)
		assert.Equal(t, 30*time.Second, cfg.Approval.PollInterval)
		assert.Equal(t, 50, cfg.RateLimit.Requests)
	})

	t.Run("UnknownSourceKind", func(t *testing.T) {
		_, err := config.Load(newViper(t, strings.Replace(validYAML, "kind: http", "kind: grpc", 1)))
		assert.Error(t, err)
	})

	t.Run("HTTPSourceNeedsBaseURL", func(t *testing.T) {
		_, err := config.Load(newViper(t, strings.Replace(validYAML, "baseURL: https://backend.example.com/api", "baseURL: \"\"", 1)))
		assert.Error(t, err)
	})

	t.Run("SessionNeedsVerificationKey", func(t *testing.T) {
		_, err := config.Load(newViper(t, strings.Replace(validYAML, "signingSecret: local-secret", "signingSecret: \"\"", 1)))
		assert.Error(t, err)
	})

	t.Run("SessionJWKSOnly", func(t *testing.T) {
		yaml := strings.Replace(validYAML, "signingSecret: local-secret", "jwksURL: https://issuer.example.com/.well-known/jwks.json", 1)
		cfg, err := config.Load(newViper(t, yaml))
		require.NoError(t, err)
		assert.Equal(t, "https://issuer.example.com/.well-known/jwks.json", cfg.Session.JWKSURL)
		assert.Empty(t, cfg.Session.SigningSecret)
	})

	t.Run("ZeroTTLRejected", func(t *testing.T) {
		_, err := config.Load(newViper(t, strings.Replace(validYAML, "ttl: 5m", "ttl: 0s", 1)))
		assert.Error(t, err)
	})
}

func TestConfigureEnvironmentOverrides(t *testing.T) {
	t.Setenv("APPROVAL_TTL", "90s")
	t.Setenv("SESSION_SIGNINGSECRET", "env-secret")
	t.Setenv("RATELIMIT_REQUESTS", "7")

	v := viper.New()
	config.Configure(v)

	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.Approval.TTL)
	assert.Equal(t, "env-secret", cfg.Session.SigningSecret)
	assert.Equal(t, 7, cfg.RateLimit.Requests)
	assert.Equal(t, 5*time.Second, cfg.Session.JWKSTimeout)
	assert.Equal(t, "8080", cfg.Server.Port)
}
