package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/gophaccounts/internal/flagx"
	"github.com/dmitrijs2005/gophaccounts/internal/timex"
	"github.com/joho/godotenv"
)

// parseEnv loads the dotenv file (-env-file, or ./.env when present) into the
// process environment and then overlays set variables onto config. Variables
// already present in the environment win over the file.
func parseEnv(config *Config, args []string) error {
	path := flagx.EnvFile(args)
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("env file: %w", err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("env file: %w", err)
	}

	err := env.ParseWithOptions(config, env.Options{
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(time.Duration(0)): func(v string) (any, error) {
				return timex.ParseDuration(v)
			},
		},
	})
	if err != nil {
		return fmt.Errorf("env: %w", err)
	}
	return nil
}
