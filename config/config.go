// config/config.go
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Configuration stores all the configurations
type Configuration struct {
	Server        ServerConfiguration
	Source        SourceConfiguration
	Approval      ApprovalConfiguration
	Session       SessionConfiguration
	Redis         RedisConfiguration
	RateLimit     RateLimitConfiguration
	Neo4j         DatabaseConfiguration
	Elasticsearch ElasticsearchConfiguration
	Audit         AuditConfiguration
	Log           LogConfiguration
}

type ServerConfiguration struct {
	Port string `validate:"required"`
}

// SourceConfiguration selects where placement records come from.
type SourceConfiguration struct {
	Kind    string        `validate:"oneof=http neo4j"`
	BaseURL string        `mapstructure:"baseURL" validate:"required_if=Kind http,omitempty,url"`
	Timeout time.Duration `validate:"gt=0"`
}

type ApprovalConfiguration struct {
	TTL          time.Duration `validate:"gt=0"`
	PollInterval time.Duration `mapstructure:"pollInterval" validate:"gte=0"`
}

// SessionConfiguration names how session tokens are verified: a shared HMAC
// secret or an RSA key set served as JWKS.
type SessionConfiguration struct {
	SigningSecret string        `mapstructure:"signingSecret" validate:"required_without=JWKSURL"`
	JWKSURL       string        `mapstructure:"jwksURL" validate:"required_without=SigningSecret,omitempty,url"`
	JWKSTimeout   time.Duration `mapstructure:"jwksTimeout" validate:"gt=0"`
}

type RedisConfiguration struct {
	Addr     string `validate:"required"`
	Password string
	DB       int
}

type RateLimitConfiguration struct {
	Requests int           `validate:"gt=0"`
	Duration time.Duration `validate:"gt=0"`
}

// DatabaseConfiguration stores data for database connection
type DatabaseConfiguration struct {
	URI      string
	Username string
	Password string
}

type ElasticsearchConfiguration struct {
	URL   string
	Index string
}

type AuditConfiguration struct {
	Enabled bool
}

type LogConfiguration struct {
	Dir string
}

var config *Configuration

func InitConfig() error {
	Configure(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return err
		}
	}

	loaded, err := Load(viper.GetViper())
	if err != nil {
		return err
	}
	config = loaded
	return nil
}

// Configure sets the config file location, defaults and environment binding on
// v. Nested keys map to upper-case variables with dots replaced by
// underscores, e.g. APPROVAL_TTL.
func Configure(v *viper.Viper) {
	v.AddConfigPath("config")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8080")
	v.SetDefault("source.kind", "http")
	v.SetDefault("source.baseURL", "http://localhost:3000/api")
	v.SetDefault("source.timeout", "10s")
	v.SetDefault("approval.ttl", "5m")
	v.SetDefault("approval.pollInterval", "30s")
	v.SetDefault("session.signingSecret", "")
	v.SetDefault("session.jwksURL", "")
	v.SetDefault("session.jwksTimeout", "5s")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("ratelimit.requests", 100)
	v.SetDefault("ratelimit.duration", "1m")
	v.SetDefault("neo4j.uri", "bolt://localhost:7687")
	v.SetDefault("elasticsearch.url", "http://localhost:9200")
	v.SetDefault("elasticsearch.index", "approval-status-audit")
	v.SetDefault("audit.enabled", false)
	v.SetDefault("log.dir", "")
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Configuration, error) {
	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}

// GetString retrieves a string value from the configuration
func GetString(key string) string {
	return viper.GetString(key)
}

func GetInt(key string) int {
	return viper.GetInt(key)
}

func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}
