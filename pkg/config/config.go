package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Generator struct {
		// Seed 0 means seed from the wall clock (non-reproducible runs).
		Seed int64 `yaml:"seed"`
	} `yaml:"generator"`
	Cache struct {
		Backend string        `yaml:"backend"` // memory or redis
		TTL     time.Duration `yaml:"ttl"`
	} `yaml:"cache"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Recorder struct {
		Enabled  bool   `yaml:"enabled"`
		Path     string `yaml:"path"`
		Schedule string `yaml:"schedule"` // cron spec for snapshot capture
	} `yaml:"recorder"`
	Stream struct {
		Interval     time.Duration `yaml:"interval"`
		PingInterval time.Duration `yaml:"ping_interval"`
	} `yaml:"stream"`
	Queue struct {
		Workers    int           `yaml:"workers"`
		RetryLimit int           `yaml:"retry_limit"`
		RetryDelay time.Duration `yaml:"retry_delay"`
	} `yaml:"queue"`
	RateLimit struct {
		Enabled   bool    `yaml:"enabled"`
		Burst     float64 `yaml:"burst"`
		PerSecond float64 `yaml:"per_second"`
	} `yaml:"rate_limit"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("NSESUITE_PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}
	if v := os.Getenv("NSESUITE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("NSESUITE_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Generator.Seed = seed
		}
	}
	if v := os.Getenv("NSESUITE_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("NSESUITE_RECORDER_PATH"); v != "" {
		c.Recorder.Path = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("cache.backend must be 'memory' or 'redis', got '%s'", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required for the redis cache backend")
	}
	if c.Recorder.Enabled {
		if c.Recorder.Path == "" {
			return fmt.Errorf("recorder.path is required when the recorder is enabled")
		}
		if c.Recorder.Schedule == "" {
			return fmt.Errorf("recorder.schedule is required when the recorder is enabled")
		}
	}
	return nil
}
