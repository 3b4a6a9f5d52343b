package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"semnet/network"
)

// Config holds everything a run of semnet can be tuned with.
type Config struct {
	Debug        bool   `yaml:"debug"`
	StrictFacts  bool   `yaml:"strict_facts"`
	CacheSize    int    `yaml:"cache_size"`
	NameWidth    int    `yaml:"name_width"`
	Prompt       string `yaml:"prompt"`
	HistoryFile  string `yaml:"history_file"`
	RenderFormat string `yaml:"render_format"`
}

func Default() Config {
	return Config{
		CacheSize:    128,
		NameWidth:    12,
		Prompt:       "Enter <?:?:?>: ",
		RenderFormat: "png",
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv overlays SEMNET_* environment variables onto cfg.
func FromEnv(cfg Config) (Config, error) {
	var err error
	if cfg.Debug, err = envBool("SEMNET_DEBUG", cfg.Debug); err != nil {
		return cfg, err
	}
	if cfg.StrictFacts, err = envBool("SEMNET_STRICT_FACTS", cfg.StrictFacts); err != nil {
		return cfg, err
	}
	if v, ok := os.LookupEnv("SEMNET_CACHE_SIZE"); ok {
		if cfg.CacheSize, err = strconv.Atoi(v); err != nil {
			return cfg, fmt.Errorf("SEMNET_CACHE_SIZE: %w", err)
		}
	}
	if v, ok := os.LookupEnv("SEMNET_HISTORY_FILE"); ok {
		cfg.HistoryFile = v
	}
	return cfg, nil
}

func envBool(name string, def bool) (bool, error) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", name, err)
	}
	return b, nil
}

// NetworkOptions converts the configuration into the options a network is
// built with.
func (c Config) NetworkOptions(logger logrus.FieldLogger) network.Options {
	return network.Options{
		Debug:       c.Debug,
		StrictFacts: c.StrictFacts,
		CacheSize:   c.CacheSize,
		Logger:      logger,
	}
}
