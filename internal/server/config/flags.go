package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/pokedex/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line
// flags.
//
// Supported flags:
//
//	-a string          bind address
//	-d string          postgres DSN
//	-k string          JWT signing secret
//	-t duration        access token lifetime
//	-seed string       JSON seed file imported into an empty catalog
//	-register string   create an admin account with this login and exit
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k", "-t", "-seed", "-register"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "bind address")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "postgres DSN")
	fs.StringVar(&config.SecretKey, "k", config.SecretKey, "JWT signing secret")
	fs.DurationVar(&config.TokenValidityDuration, "t", config.TokenValidityDuration, "access token lifetime")
	fs.StringVar(&config.SeedFile, "seed", config.SeedFile, "JSON seed file imported into an empty catalog")
	fs.StringVar(&config.RegisterLogin, "register", config.RegisterLogin, "create an admin account with this login and exit")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
