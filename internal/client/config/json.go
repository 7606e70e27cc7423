package config

import (
	"encoding/json"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/dmitrijs2005/kbclip/internal/flagx"
	"github.com/dmitrijs2005/kbclip/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "missing" apart from "empty".
type JsonConfig struct {
	VerifyEndpointURL  *string         `json:"verify_endpoint_url"`
	CaptureEndpointURL *string         `json:"capture_endpoint_url"`
	APIKey             *string         `json:"api_key"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
	DatabasePath       *string         `json:"database_path"`
	CDPEndpoint        *string         `json:"cdp_endpoint"`
	StaticTabURL       *string         `json:"static_tab_url"`
	StaticTabTitle     *string         `json:"static_tab_title"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
// The file may contain comments and trailing commas. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &jc); err != nil {
		panic(err)
	}

	setString(&cfg.VerifyEndpointURL, jc.VerifyEndpointURL)
	setString(&cfg.CaptureEndpointURL, jc.CaptureEndpointURL)
	setString(&cfg.APIKey, jc.APIKey)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.CDPEndpoint, jc.CDPEndpoint)
	setString(&cfg.StaticTabURL, jc.StaticTabURL)
	setString(&cfg.StaticTabTitle, jc.StaticTabTitle)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
