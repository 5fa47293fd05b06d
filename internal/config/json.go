package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/universeproject/client-go/internal/flagx"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. The timeout is
// a string in time.ParseDuration form ("20s", "1m30s") so config files stay
// readable.
type jsonConfig struct {
	ServiceURL     string `json:"service_url"`
	RequestTimeout string `json:"request_timeout"`
}

// parseJSON overlays cfg with values loaded from a JSON file. The file path
// comes from the -c/-config flags; when neither is given nothing is loaded.
// Read or parse errors panic; the composition root treats a broken config
// file as fatal.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
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

	if jc.ServiceURL != "" {
		cfg.ServiceURL = jc.ServiceURL
	}
	if jc.RequestTimeout != "" {
		d, err := time.ParseDuration(jc.RequestTimeout)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}
