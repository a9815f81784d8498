package config

import "time"

// CLIFlags holds command-line overrides. A nil field means the flag was not
// set and the lower layers win.
type CLIFlags struct {
	ConfigPath *string
	WebhookURL *string
	Message    *string
	Timeout    *time.Duration
	Host       *string
	Port       *string
	LogLevel   *string
}

// LoadWithCLI applies the full hierarchy: defaults < YAML < ENV < CLI.
// It returns the config and the YAML path that was consulted.
func LoadWithCLI(flags CLIFlags) (*Config, string, error) {
	path := DefaultConfigFile
	if flags.ConfigPath != nil && *flags.ConfigPath != "" {
		path = *flags.ConfigPath
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		return nil, path, err
	}

	applyCLI(cfg, flags)

	if err := validate(cfg); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// applyCLI overlays set flags onto cfg.
func applyCLI(cfg *Config, flags CLIFlags) {
	if flags.WebhookURL != nil {
		cfg.Notify.WebhookURL = *flags.WebhookURL
	}
	if flags.Message != nil {
		cfg.Notify.Message = *flags.Message
	}
	if flags.Timeout != nil {
		cfg.Notify.Timeout = *flags.Timeout
	}
	if flags.Host != nil {
		cfg.Server.Host = *flags.Host
	}
	if flags.Port != nil {
		cfg.Server.Port = *flags.Port
	}
	if flags.LogLevel != nil {
		cfg.Logging.Level = *flags.LogLevel
	}
}
