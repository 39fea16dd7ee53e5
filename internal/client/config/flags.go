package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/pokedex/internal/flagx"
)

// parseFlags populates selected client Config fields from command-line
// flags.
//
// Supported flags (short forms):
//
//	-a string   catalog server base URL
//	-d string   sqlite database path
//	-i string   data directory for cached images
//
// The function first filters os.Args to only the flags it recognizes
// using flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerEndpointAddr, "a", config.ServerEndpointAddr, "catalog server base URL")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "sqlite database path")
	fs.StringVar(&config.DataDir, "i", config.DataDir, "data directory for cached images")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
