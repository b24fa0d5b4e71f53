package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v2"
)

const configFile = "config.yml"

// config holds the settings that can be given defaults in the YAML
// configuration file. Flags and environment variables take precedence.
type config struct {
	DB         string `yaml:"db"`
	Addressing string `yaml:"addressing"`
	Colors     int    `yaml:"colors"`
	Workers    int    `yaml:"workers"`
	Verbose    bool   `yaml:"verbose"`
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "bhi", configFile)
}

// loadConfig reads file. A missing file isn't an error and results in an
// empty configuration.
func loadConfig(file string) (*config, error) {
	cfg := new(config)
	if file == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.UnmarshalStrict(b, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	return cfg, nil
}

// settings returns the configuration file merged with any flags that were
// set on the command line or through the environment.
func settings(c *cli.Context) (*config, error) {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("db") {
		cfg.DB = c.String("db")
	}
	if c.IsSet("addressing") || cfg.Addressing == "" {
		cfg.Addressing = c.String("addressing")
	}
	if c.IsSet("verbose") {
		cfg.Verbose = c.Bool("verbose")
	}
	if c.IsSet("colors") {
		cfg.Colors = c.Int("colors")
	}
	if c.IsSet("workers") || cfg.Workers == 0 {
		cfg.Workers = c.Int("workers")
	}

	return cfg, nil
}
