package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"scm-event-dispatcher/internal/source"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Webhook intake
	Webhook WebhookConfig

	// Dispatch
	Events EventsConfig
	SCM    SCMConfig

	// Source registry
	Storage    StorageConfig
	Sources    []source.SourceSpec
	Navigators []source.NavigatorSpec

	// Listeners
	AMQP  AMQPConfig
	Audit AuditConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	AdminToken      string
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type WebhookConfig struct {
	Secret          string
	AllowedIPs      []string
	TrustedProxies  []string
	RateLimitPerMin int
}

type EventsConfig struct {
	Delay     time.Duration
	Workers   int
	QueueSize int
}

type SCMConfig struct {
	// APIHosts maps enterprise API hosts to their repository host.
	APIHosts map[string]string
}

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

type StorageConfig struct {
	Driver string
	DSN    string
}

type AMQPConfig struct {
	Enabled        bool
	URL            string
	Exchange       string
	ExchangeKind   string
	RoutingKey     string
	ConnectionName string
}

type AuditConfig struct {
	RecentSize int
	RecentTTL  time.Duration
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	return load(viper.New(), "./config", ".", "/etc/app/")
}

func load(v *viper.Viper, paths ...string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.HTTPServer.AdminToken = v.GetString("http_server.admin_token")
	cfg.HTTPServer.ShutdownTimeout = v.GetDuration("http_server.shutdown_timeout")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// Webhooks
	cfg.Webhook.Secret = v.GetString("webhook.secret")
	if webhookSecret := v.GetString("webhook_secret"); webhookSecret != "" {
		cfg.Webhook.Secret = webhookSecret
	}
	cfg.Webhook.RateLimitPerMin = v.GetInt("webhook.rate_limit_per_min")
	cfg.Webhook.AllowedIPs = splitList(v.GetStringSlice("webhook.allowed_ips"))
	cfg.Webhook.TrustedProxies = splitList(v.GetStringSlice("webhook.trusted_proxies"))

	// Dispatch
	cfg.Events.Delay = time.Duration(v.GetInt("events.delay_seconds")) * time.Second
	cfg.Events.Workers = v.GetInt("events.workers")
	cfg.Events.QueueSize = v.GetInt("events.queue_size")
	cfg.SCM.APIHosts = v.GetStringMapString("scm.api_hosts")

	// Registry
	cfg.Storage.Driver = strings.ToLower(v.GetString("storage.driver"))
	cfg.Storage.DSN = v.GetString("storage.dsn")
	if err := v.UnmarshalKey("sources", &cfg.Sources); err != nil {
		return nil, fmt.Errorf("decode sources: %w", err)
	}
	if err := v.UnmarshalKey("navigators", &cfg.Navigators); err != nil {
		return nil, fmt.Errorf("decode navigators: %w", err)
	}

	// Listeners
	cfg.AMQP.Enabled = v.GetBool("amqp.enabled")
	cfg.AMQP.URL = v.GetString("amqp.url")
	cfg.AMQP.Exchange = v.GetString("amqp.exchange")
	cfg.AMQP.ExchangeKind = v.GetString("amqp.exchange_kind")
	cfg.AMQP.RoutingKey = v.GetString("amqp.routing_key")
	cfg.AMQP.ConnectionName = v.GetString("amqp.connection_name")
	if amqpURL := v.GetString("amqp_url"); amqpURL != "" {
		cfg.AMQP.URL = amqpURL
	}
	cfg.Audit.RecentSize = v.GetInt("audit.recent_size")
	cfg.Audit.RecentTTL = v.GetDuration("audit.recent_ttl")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("http_server.shutdown_timeout", "10s")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)
	v.SetDefault("webhook.rate_limit_per_min", 60)

	// Dispatch defaults
	v.SetDefault("events.delay_seconds", 5)
	v.SetDefault("events.workers", 4)
	v.SetDefault("events.queue_size", 256)

	v.SetDefault("storage.driver", StorageMemory)
	v.SetDefault("storage.dsn", "file:scm-event-dispatcher.db")

	v.SetDefault("amqp.exchange", "scm.events")
	v.SetDefault("amqp.exchange_kind", "topic")
	v.SetDefault("amqp.routing_key", "scm.{target}.{kind}")
	v.SetDefault("amqp.connection_name", "scm-event-dispatcher")

	v.SetDefault("audit.recent_size", 200)
	v.SetDefault("audit.recent_ttl", "1h")
}

func (c *Config) validate() error {
	if c.Events.Delay < 0 {
		return fmt.Errorf("events.delay_seconds must not be negative")
	}
	switch c.Storage.Driver {
	case StorageMemory:
	case StorageSQLite:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}
	if c.AMQP.Enabled && c.AMQP.URL == "" {
		return fmt.Errorf("amqp.url is required when amqp is enabled")
	}
	return nil
}

// splitList flattens entries that arrive comma separated from env vars.
func splitList(raw []string) []string {
	var out []string
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
