// Package config handles configuration for the pokedex client,
// including defaults, JSON overlay, and command-line flags.
package config

// Config holds runtime settings for the pokedex client.
//
// Fields:
//   - ServerEndpointAddr: base URL of the catalog server (e.g. "http://127.0.0.1:9090").
//   - DatabaseDSN: path of the local sqlite database file.
//   - DataDir: directory the image cache lives under; empty means the
//     current working directory.
type Config struct {
	ServerEndpointAddr string
	DatabaseDSN        string
	DataDir            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:9090"
	c.DatabaseDSN = "pokedex.db"
	c.DataDir = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
