// Package config provides hierarchical configuration loading for gchat-notify.
// Precedence: defaults < YAML file < environment variables < command-line flags.
package config

import "time"

// Config holds all runtime configuration.
type Config struct {
	Notify    Notify    `yaml:"notify"`
	Server    Server    `yaml:"server"`
	Logging   Logging   `yaml:"logging"`
	Telemetry Telemetry `yaml:"telemetry"`
}

// Notify holds the webhook post inputs. WebhookURL and Message are checked
// by notification.Validate, not here, so their error messages stay specific.
type Notify struct {
	WebhookURL  string        `yaml:"webhook_url"`
	Message     string        `yaml:"message"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxParallel int           `yaml:"max_parallel"` // concurrent dispatches in batch posts
}

// Server holds HTTP relay configuration. A per-request webhook_url is only
// accepted when its host is listed in AllowedWebhookHosts; an empty list
// restricts the relay to the configured default webhook.
type Server struct {
	Host                string   `yaml:"host"`
	Port                string   `yaml:"port"`
	AllowedWebhookHosts []string `yaml:"allowed_webhook_hosts"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
	Async   bool   `yaml:"async"`
}

// Telemetry holds OpenTelemetry OTLP/gRPC exporter configuration.
type Telemetry struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
	Insecure bool   `yaml:"insecure"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Notify: Notify{
			Timeout:     15 * time.Second,
			MaxParallel: 4,
		},
		Server: Server{
			Host:                "127.0.0.1",
			Port:                "8080",
			AllowedWebhookHosts: []string{"chat.googleapis.com"},
		},
		Logging: Logging{
			Level:   "info",
			Service: "gchat-notify",
		},
		Telemetry: Telemetry{
			Endpoint: "localhost:4317",
			Insecure: true,
		},
	}
}
