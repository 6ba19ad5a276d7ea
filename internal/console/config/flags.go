package config

import (
	"flag"
	"os"
	"time"

	"github.com/sprinklerworks/sprinklerctl/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   base URL of the device REST API (default from Config)
//	-f string   path of the local credential database
//	-t int      request timeout in seconds
//
// Arguments are filtered with flagx.FilterArgs so flags owned by other
// components pass through untouched.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-f", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DeviceURL, "d", cfg.DeviceURL, "base URL of the device REST API")
	fs.StringVar(&cfg.DatabaseFile, "f", cfg.DatabaseFile, "path of the local credential database")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
