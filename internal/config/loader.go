package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "gchat-notify.yaml"

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is supplied by the operator
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Notify.WebhookURL, "GCHAT_WEBHOOK_URL")
	setString(&cfg.Notify.Message, "GCHAT_MESSAGE")
	setDuration(&cfg.Notify.Timeout, "GCHAT_TIMEOUT")
	setInt(&cfg.Notify.MaxParallel, "GCHAT_MAX_PARALLEL")
	setString(&cfg.Server.Host, "GCHAT_HOST")
	setString(&cfg.Server.Port, "GCHAT_PORT")
	setList(&cfg.Server.AllowedWebhookHosts, "GCHAT_ALLOWED_WEBHOOK_HOSTS")
	setString(&cfg.Logging.Level, "GCHAT_LOG_LEVEL")
	setString(&cfg.Logging.Service, "GCHAT_LOG_SERVICE")
	setBool(&cfg.Logging.Async, "GCHAT_LOG_ASYNC")

	// Telemetry
	setBool(&cfg.Telemetry.Enabled, "GCHAT_OTEL_ENABLED")
	setString(&cfg.Telemetry.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setBool(&cfg.Telemetry.Insecure, "GCHAT_OTEL_INSECURE")
}

// validate checks the runtime settings. Webhook inputs are left to
// notification.Validate.
func validate(cfg *Config) error {
	if cfg.Notify.Timeout <= 0 {
		return errors.New("notify.timeout must be > 0")
	}
	if cfg.Notify.MaxParallel < 1 {
		return errors.New("notify.max_parallel must be >= 1")
	}
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint == "" {
		return errors.New("telemetry.endpoint is required when telemetry is enabled")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// setList splits a comma-separated value. "none" yields an empty list.
func setList(dst *[]string, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if v == "none" {
		*dst = []string{}
		return
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*dst = out
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
