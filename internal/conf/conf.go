// Package conf holds the bootstrap configuration scanned from the config
// sources (YAML file, environment overrides).
package conf

import "time"

// Bootstrap is the root configuration.
type Bootstrap struct {
	Server      *Server      `json:"server"`
	Data        *Data        `json:"data"`
	Geolocation *Geolocation `json:"geolocation"`
}

// Server configures the transport layer.
type Server struct {
	HTTP ServerHTTP `json:"http"`
}

// ServerHTTP configures the HTTP listener.
type ServerHTTP struct {
	Network string `json:"network"`
	Addr    string `json:"addr"`
	// Timeout is a Go duration string, e.g. "1s". Empty means the
	// transport default.
	Timeout string `json:"timeout"`
}

// ParseTimeout returns the configured timeout, or zero when unset or
// malformed.
func (s ServerHTTP) ParseTimeout() time.Duration {
	if s.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Data configures persistence backends.
type Data struct {
	Database Database `json:"database"`
	Redis    Redis    `json:"redis"`
}

// Database configures the SQL store.
type Database struct {
	Driver string `json:"driver"`
	Source string `json:"source"`
}

// Redis configures the optional cache. An empty Addr disables caching.
type Redis struct {
	Addr string `json:"addr"`
}

// Geolocation configures the external IP-geolocation provider.
type Geolocation struct {
	Endpoint string `json:"endpoint"`
	APIKey   string `json:"apiKey"`
	// RetryMaxAttempts counts retries after the initial request. Default 3.
	RetryMaxAttempts int `json:"retryMaxAttempts"`
	// RetryBackoffMs is the fixed delay between attempts. Default 1000.
	RetryBackoffMs int64 `json:"retryBackoffMs"`
}
