package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/kbclip/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   secret key
//	-t int      session credential validity, minutes
//	-l int      one-time login token validity, minutes
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-x          archive captured pages to S3 (use -x=false to disable)
//	-i string   print a one-time login token for this user id and exit
//
// os.Args is filtered with flagx.FilterArgs first so that -c and unknown
// flags are ignored. Duration flags are whole minutes.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-l", "-u", "-p", "-b", "-g", "-e", "-x", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionValidity := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session credential validity (in minutes)")
	loginTokenValidity := fs.Int("l", int(config.LoginTokenValidityDuration.Minutes()), "one-time login token validity (in minutes)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.BoolVar(&config.ArchiveEnabled, "x", config.ArchiveEnabled, "archive captured pages to S3")
	fs.StringVar(&config.IssueTokenFor, "i", config.IssueTokenFor, "issue a one-time login token for this user id and exit")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Minute
	config.LoginTokenValidityDuration = time.Duration(*loginTokenValidity) * time.Minute
}
