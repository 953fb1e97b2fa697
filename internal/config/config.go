package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config holds all runtime configuration, loaded from environment variables
// prefixed with EDT_.
type Config struct {
	Upstream Upstream `envPrefix:"UPSTREAM_"`
	Cache    Cache    `envPrefix:"CACHE_"`
	HTTP     HTTP     `envPrefix:"HTTP_"`
}

// Upstream configures the timetable export API.
type Upstream struct {
	// URL is the export endpoint. The access token is appended as a
	// query-string parameter on each request.
	URL string `env:"URL" envDefault:"https://extranet.example.org/icalendrier/export/xml"`

	// Token authenticates against the export endpoint.
	Token string `env:"TOKEN" envDefault:"demo-token"`

	// Timeout bounds a single fetch, in seconds.
	Timeout int `env:"TIMEOUT" envDefault:"60"`
}

// Cache configures the sanitized-export file cache.
type Cache struct {
	// Dir is the cache directory. Empty means the per-user cache directory
	// (see cache.DefaultDir).
	Dir string `env:"DIR"`

	// File is the name of the single cache entry inside Dir.
	File string `env:"FILE" envDefault:"icalendrier.xml"`

	// TTL is the freshness window in seconds. An entry older than this is
	// regenerated on the next request.
	TTL int `env:"TTL" envDefault:"1800"`
}

// HTTP configures the server.
type HTTP struct {
	Address string `env:"ADDRESS" envDefault:":8080"`
}

// Parse reads .env (if present) then environment variables and returns Config.
func Parse() (*Config, error) {
	// Best-effort: load .env from current directory
	_ = godotenv.Load()

	conf, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix: "EDT_",
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &conf, nil
}

// FetchTimeout returns the upstream timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Upstream.Timeout) * time.Second
}

// CacheTTL returns the cache freshness window as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTL) * time.Second
}
