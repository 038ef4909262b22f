package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) lookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "Buenos Aires", cfg.HomeCity)
	assert.Equal(t, "Mi Viaje", cfg.DefaultTripTitle)
	assert.Equal(t, 200, cfg.MaxImportDestinations)
	assert.Equal(t, []string{"es", "en"}, cfg.ShareLocales)
	assert.Equal(t, "es", cfg.DefaultLocale())
	assert.Zero(t, cfg.ShareLinkTTL)
}

func TestApplyEnv_Overrides(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.applyEnv(envFrom(map[string]string{
		"PORT":                    "9090",
		"APP_BASE_URL":            "https://trips.example.com/",
		"SHARE_LOCALES":           " EN, es ,",
		"SHARE_LINK_TTL":          "72h",
		"MAX_IMPORT_DESTINATIONS": "50",
		"HOME_CITY":               "Córdoba",
		"SMTP_PORT":               "2525",
	}))

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://trips.example.com", cfg.AppBaseURL)
	assert.Equal(t, []string{"en", "es"}, cfg.ShareLocales)
	assert.Equal(t, "en", cfg.DefaultLocale())
	assert.Equal(t, 72*time.Hour, cfg.ShareLinkTTL)
	assert.Equal(t, 50, cfg.MaxImportDestinations)
	assert.Equal(t, "Córdoba", cfg.HomeCity)
	assert.Equal(t, 2525, cfg.SMTPPort)
}

func TestApplyEnv_IgnoresGarbage(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.applyEnv(envFrom(map[string]string{
		"JWT_TTL":                 "soon",
		"MAX_IMPORT_DESTINATIONS": "-3",
		"SHARE_LOCALES":           " , ",
		"HOME_CITY":               "   ",
	}))

	require.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, 200, cfg.MaxImportDestinations)
	assert.Equal(t, []string{"es", "en"}, cfg.ShareLocales)
	assert.Equal(t, "Buenos Aires", cfg.HomeCity)
}

func TestApplyEnv_ZeroShareCacheTTL(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()
	require.Equal(t, 5*time.Minute, cfg.ShareCacheTTL)

	cfg.applyEnv(envFrom(map[string]string{"SHARE_CACHE_TTL": "0s"}))
	assert.Zero(t, cfg.ShareCacheTTL)
}
