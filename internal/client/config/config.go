// Package config loads settings for the gophaccounts CLI.
//
// Sources, lowest precedence first: built-in defaults, GOPHACCOUNTS_*
// environment variables, the JSON file named by -c/-config, and flags.
// Everything after the flags is returned untouched as the command line.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/gophaccounts/internal/flagx"
	"github.com/dmitrijs2005/gophaccounts/internal/timex"
)

type Config struct {
	ServerEndpointAddr string        `env:"GOPHACCOUNTS_ADDRESS"`
	Token              string        `env:"GOPHACCOUNTS_TOKEN"`
	RequestTimeout     time.Duration `env:"GOPHACCOUNTS_TIMEOUT"`
}

// JsonConfig is the on-disk shape of the -c/-config file.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	Token              string         `json:"token"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig parses args (without the program name) and returns the config
// together with the remaining positional arguments.
func LoadConfig(args []string) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := env.Parse(cfg); err != nil {
		return nil, nil, fmt.Errorf("env: %w", err)
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, nil, err
	}
	rest, err := parseFlags(cfg, args)
	if err != nil {
		return nil, nil, err
	}
	return cfg, rest, nil
}

func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.Token != "" {
		cfg.Token = jc.Token
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func parseFlags(cfg *Config, args []string) ([]string, error) {
	fs := flag.NewFlagSet("gophaccounts-cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the accounts server")
	fs.StringVar(&cfg.Token, "t", cfg.Token, "access token")
	timeout := fs.String("timeout", cfg.RequestTimeout.String(), "per-request timeout")
	// consumed by parseJson
	fs.String("c", "", "JSON config file")
	fs.String("config", "", "JSON config file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}

	d, err := timex.ParseDuration(*timeout)
	if err != nil {
		return nil, fmt.Errorf("flags: timeout: %w", err)
	}
	cfg.RequestTimeout = d

	return fs.Args(), nil
}
