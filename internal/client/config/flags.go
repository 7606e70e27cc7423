package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/kbclip/internal/flagx"
)

// parseFlags populates Config fields from the short command-line flags.
// os.Args is filtered with flagx.FilterArgs first so that -c and unknown
// flags do not break parsing. Panics on malformed values.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-v", "-s", "-k", "-t", "-d", "-b", "-u", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.VerifyEndpointURL, "v", cfg.VerifyEndpointURL, "token verification endpoint URL")
	fs.StringVar(&cfg.CaptureEndpointURL, "s", cfg.CaptureEndpointURL, "knowledge base storage endpoint URL")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "api key sent with captures")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "session database path")
	fs.StringVar(&cfg.CDPEndpoint, "b", cfg.CDPEndpoint, "browser DevTools endpoint")
	fs.StringVar(&cfg.StaticTabURL, "u", cfg.StaticTabURL, "capture this URL instead of the active tab")
	fs.StringVar(&cfg.StaticTabTitle, "n", cfg.StaticTabTitle, "title of the page given with -u")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
