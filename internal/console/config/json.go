package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/sprinklerworks/sprinklerctl/internal/flagx"
	"github.com/sprinklerworks/sprinklerctl/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the timeout can be spelled "30s" or as integer
// nanoseconds.
type jsonConfig struct {
	DeviceURL      string         `json:"device_url"`
	DatabaseFile   string         `json:"database_file"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJSON overlays cfg with values from the JSON file named by -c/-config.
// Absent file path means no JSON source. Read or unmarshal errors panic;
// a broken config file should stop the console before it talks to anything.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFileFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DeviceURL != "" {
		cfg.DeviceURL = jc.DeviceURL
	}
	if jc.DatabaseFile != "" {
		cfg.DatabaseFile = jc.DatabaseFile
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}
