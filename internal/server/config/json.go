package config

import (
	"encoding/json"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/dmitrijs2005/kbclip/internal/flagx"
	"github.com/dmitrijs2005/kbclip/internal/timex"
)

// JsonConfig is the DTO read from the JSON configuration file. Durations
// use timex.Duration, so both "15m" and integer nanoseconds are accepted.
// Keys missing from the file leave earlier values untouched.
type JsonConfig struct {
	ListenAddr                 *string         `json:"listen_addr"`
	DatabaseDSN                *string         `json:"database_dsn"`
	SecretKey                  *string         `json:"secret_key"`
	SessionValidityDuration    *timex.Duration `json:"session_validity_duration"`
	LoginTokenValidityDuration *timex.Duration `json:"login_token_validity_duration"`
	S3RootUser                 *string         `json:"s3_root_user"`
	S3RootPassword             *string         `json:"s3_root_password"`
	S3Bucket                   *string         `json:"s3_bucket"`
	S3Region                   *string         `json:"s3_region"`
	S3BaseEndpoint             *string         `json:"s3_base_endpoint"`
	ArchiveEnabled             *bool           `json:"archive_enabled"`
}

// parseJson loads configuration values from the file named by -c or
// -config. Comments and trailing commas are allowed. Panics when the file
// cannot be read or parsed.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(jsonc.ToJSON(file), c); err != nil {
		panic(err)
	}

	for dst, v := range map[*string]*string{
		&config.ListenAddr:     c.ListenAddr,
		&config.DatabaseDSN:    c.DatabaseDSN,
		&config.SecretKey:      c.SecretKey,
		&config.S3RootUser:     c.S3RootUser,
		&config.S3RootPassword: c.S3RootPassword,
		&config.S3Bucket:       c.S3Bucket,
		&config.S3Region:       c.S3Region,
		&config.S3BaseEndpoint: c.S3BaseEndpoint,
	} {
		if v != nil {
			*dst = *v
		}
	}
	if c.SessionValidityDuration != nil {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	if c.LoginTokenValidityDuration != nil {
		config.LoginTokenValidityDuration = c.LoginTokenValidityDuration.Duration
	}
	if c.ArchiveEnabled != nil {
		config.ArchiveEnabled = *c.ArchiveEnabled
	}
}
