package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/travelrisk/internal/flagx"
	"github.com/dmitrijs2005/travelrisk/internal/logging"
)

var ownFlags = []string{"-a", "-d", "-m", "-t", "-l"}

// parseFlags overlays cfg with the flags this package owns. Other
// arguments are filtered out with flagx.FilterArgs first.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("travelrisk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the backend")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database")
	fs.StringVar(&cfg.NotificationMode, "m", cfg.NotificationMode, "notification mode (remote|local)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	level := fs.String("l", string(cfg.LogLevel), "log level")

	if err := fs.Parse(flagx.FilterArgs(args, ownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if *timeout < 0 {
		return fmt.Errorf("parse flags: negative timeout %d", *timeout)
	}

	// -t only wins when given, so sub-second file values survive
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	cfg.LogLevel = logging.Level(*level)
	return nil
}
