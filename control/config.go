// control/config.go
// Author: momentics <momentics@gmail.com>
//
// YAML configuration for toolkit deployments and the demo program.

package control

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/momentics/hioload-conc/api"
)

// Config is the root configuration document.
type Config struct {
	Pool  PoolConfig  `yaml:"pool"`
	Log   LogConfig   `yaml:"log"`
	Debug DebugConfig `yaml:"debug"`
	Demo  DemoConfig  `yaml:"demo"`
}

// PoolConfig configures the ThreadPool.
type PoolConfig struct {
	Threads    int    `yaml:"threads"`     // 0 selects GOMAXPROCS
	PinWorkers bool   `yaml:"pin_workers"` // bind each worker to one CPU
	Name       string `yaml:"name"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // zerolog level name
	Format string `yaml:"format"` // console or json
}

// DebugConfig configures the diagnostics endpoint.
type DebugConfig struct {
	Addr             string `yaml:"addr"` // empty disables the server
	MetricsNamespace string `yaml:"metrics_namespace"`
}

// DemoConfig holds workload sizes of the demo program.
type DemoConfig struct {
	SumTasks         int           `yaml:"sum_tasks"`
	SumWork          int           `yaml:"sum_work"`
	MatrixSize       int           `yaml:"matrix_size"`
	Producers        int           `yaml:"producers"`
	MessagesEach     int           `yaml:"messages_each"`
	ProducerInterval time.Duration `yaml:"producer_interval"`
	BlockSize        int           `yaml:"block_size"`
	NumBlocks        int           `yaml:"num_blocks"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info", Format: "console"},
		Debug: DebugConfig{
			MetricsNamespace: "hioload",
		},
		Demo: DemoConfig{
			SumTasks:         1000,
			SumWork:          1000,
			MatrixSize:       500,
			Producers:        3,
			MessagesEach:     10,
			ProducerInterval: 20 * time.Millisecond,
			BlockSize:        64,
			NumBlocks:        10,
		},
	}
}

// Load reads a YAML file over the defaults. Environment references such as
// ${HIOLOAD_THREADS} are expanded before parsing.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	positive := map[string]int{
		"demo.sum_tasks":     c.Demo.SumTasks,
		"demo.sum_work":      c.Demo.SumWork,
		"demo.matrix_size":   c.Demo.MatrixSize,
		"demo.producers":     c.Demo.Producers,
		"demo.messages_each": c.Demo.MessagesEach,
		"demo.block_size":    c.Demo.BlockSize,
		"demo.num_blocks":    c.Demo.NumBlocks,
	}
	for key, v := range positive {
		if v <= 0 {
			return api.NewError(api.ErrCodeInvalidArgument, "value must be positive").
				WithContext("key", key).WithContext("value", v)
		}
	}
	if c.Pool.Threads < 0 {
		return api.NewError(api.ErrCodeInvalidArgument, "pool.threads must not be negative").
			WithContext("value", c.Pool.Threads)
	}
	if c.Demo.ProducerInterval < 0 {
		return api.NewError(api.ErrCodeInvalidArgument, "demo.producer_interval must not be negative")
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return api.NewError(api.ErrCodeInvalidArgument, "unknown log format").
			WithContext("format", c.Log.Format)
	}
	return nil
}
