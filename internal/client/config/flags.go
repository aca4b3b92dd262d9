package config

import (
	"flag"
	"os"

	"github.com/example/uikart/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the marketplace backend
//	-d string   path to the local credential database
//
// The function filters os.Args down to the flags it knows about, using
// flagx.FilterArgs, so it does not interfere with flags owned elsewhere
// (such as -c/-config).
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the marketplace backend")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local credential database")

	return fs.Parse(args)
}
