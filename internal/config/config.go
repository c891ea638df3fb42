package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the CLI.
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// ShipEngine
	APIKey  string        `envconfig:"SHIPENGINE_API_KEY"`
	BaseURL string        `envconfig:"SHIPENGINE_BASE_URL" default:"https://api.shipengine.com/v1/"`
	Timeout time.Duration `envconfig:"SHIPENGINE_TIMEOUT" default:"30s"`
	UseMock bool          `envconfig:"SHIPENGINE_USE_MOCK" default:"false"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"shipengine-go"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.Bool("shipengine.use_mock", c.UseMock),
	}
}
