package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DemoConfig controls the sample generation loop.
type DemoConfig struct {
	Samples int `yaml:"samples"`
	RateHz  int `yaml:"rate_hz"` // 0 = generate as fast as possible
}

// OutputConfig controls where and how results are emitted.
type OutputConfig struct {
	Path         string `yaml:"path"` // empty = stdout
	AccelSummary bool   `yaml:"accel_summary"`
	ReportCSV    string `yaml:"report_csv"`
}

// MetricsConfig controls the optional Prometheus endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Config is the top-level structure for the demo config file.
type Config struct {
	Demo    DemoConfig    `yaml:"demo"`
	Output  OutputConfig  `yaml:"output"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// Default returns the built-in settings used when no config file is given.
func Default() *Config {
	return &Config{
		Demo:   DemoConfig{Samples: 200},
		Output: OutputConfig{AccelSummary: true},
	}
}

// Load reads and parses a demo config file, starting from defaults so a
// partial file only overrides what it names.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read demo config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse demo config: %w", err)
	}
	return cfg, nil
}
