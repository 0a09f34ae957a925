package config

import (
	"fmt"
	"time"
)

// ClientConfig configures the terminal client.
type ClientConfig struct {
	APIURL  string        `yaml:"api_url" env:"API_URL" env-default:"http://localhost:3000/api"`
	Timeout time.Duration `yaml:"timeout" env:"CLIENT_TIMEOUT" env-default:"10s"`
	// Events turns on the websocket listener that refreshes the list when
	// another client changes a user.
	Events bool `yaml:"events" env:"CLIENT_EVENTS" env-default:"true"`
}

func LoadClient(path string) (*ClientConfig, error) {
	var cfg ClientConfig
	if err := read(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("invalid config: api url is empty")
	}
	return &cfg, nil
}
