package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/pokedex/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":9090", cfg.EndpointAddr)
	assert.Equal(t, 15*time.Minute, cfg.TokenValidityDuration)
	assert.False(t, cfg.UseS3Images)
	assert.Empty(t, cfg.SeedFile)
}

func TestParseFlags_Overrides(t *testing.T) {
	old := os.Args
	t.Cleanup(func() { os.Args = old })
	os.Args = []string{"server", "-a", ":8080", "-k", "supersecret", "-t", "1h", "-register", "admin"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.Equal(t, "supersecret", cfg.SecretKey)
	assert.Equal(t, time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, "admin", cfg.RegisterLogin)
}

func TestParseJson_Overrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	b, err := json.Marshal(JsonConfig{
		EndpointAddr:          ":7070",
		TokenValidityDuration: timex.Duration{Duration: 30 * time.Minute},
		UseS3Images:           true,
		S3Bucket:              "imgs",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o660))

	old := os.Args
	t.Cleanup(func() { os.Args = old })
	os.Args = []string{"server", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":7070", cfg.EndpointAddr)
	assert.Equal(t, 30*time.Minute, cfg.TokenValidityDuration)
	assert.True(t, cfg.UseS3Images)
	assert.Equal(t, "imgs", cfg.S3Bucket)
	assert.Equal(t, "secretKey", cfg.SecretKey, "unset JSON fields keep defaults")
}

func TestParseJson_DurationString(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token_validity_duration":"45m"}`), 0o660))

	old := os.Args
	t.Cleanup(func() { os.Args = old })
	os.Args = []string{"server", "-config", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, 45*time.Minute, cfg.TokenValidityDuration)
}
