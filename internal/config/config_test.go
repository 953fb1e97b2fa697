package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	conf, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "https://extranet.example.org/icalendrier/export/xml", conf.Upstream.URL)
	assert.Equal(t, "icalendrier.xml", conf.Cache.File)
	assert.Equal(t, 1800, conf.Cache.TTL)
	assert.Equal(t, ":8080", conf.HTTP.Address)
	assert.Empty(t, conf.Cache.Dir)
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("EDT_UPSTREAM_URL", "https://upstream.test/export")
	t.Setenv("EDT_UPSTREAM_TOKEN", "override-token")
	t.Setenv("EDT_CACHE_DIR", "/tmp/edt")
	t.Setenv("EDT_CACHE_TTL", "60")
	t.Setenv("EDT_HTTP_ADDRESS", ":9090")

	conf, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "https://upstream.test/export", conf.Upstream.URL)
	assert.Equal(t, "override-token", conf.Upstream.Token)
	assert.Equal(t, "/tmp/edt", conf.Cache.Dir)
	assert.Equal(t, 60*time.Second, conf.CacheTTL())
	assert.Equal(t, ":9090", conf.HTTP.Address)
}

func TestConfig_Durations(t *testing.T) {
	conf := &Config{
		Upstream: Upstream{Timeout: 60},
		Cache:    Cache{TTL: 1800},
	}

	assert.Equal(t, time.Minute, conf.FetchTimeout())
	assert.Equal(t, 30*time.Minute, conf.CacheTTL())
}
