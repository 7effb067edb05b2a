package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	// HeartbeatInterval is how often each connection is pinged;
	// StaleThreshold is how long a connection may stay silent before
	// it is logged as lost. Staleness never evicts a connection.
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval" yaml:"heartbeat_interval"`
	StaleThreshold    time.Duration `mapstructure:"stale_threshold" yaml:"stale_threshold"`

	// SendBuffer is the per-connection outbound event buffer; events
	// beyond it are dropped rather than blocking the hub.
	SendBuffer int `mapstructure:"send_buffer" yaml:"send_buffer"`

	TokenSecret string        `mapstructure:"token_secret" yaml:"token_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl" yaml:"token_ttl"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":3001",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		HeartbeatInterval: 10 * time.Second,
		StaleThreshold:    60 * time.Second,
		SendBuffer:        32,
		TokenSecret:       "change-me",
		TokenTTL:          24 * time.Hour,
	}
}
