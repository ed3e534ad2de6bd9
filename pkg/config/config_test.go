package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleYAML = `
environment: test
server:
  port: 8080
  read_timeout: 5s
  write_timeout: 10s
  shutdown_timeout: 15s
log:
  level: debug
  format: json
  output: stdout
generator:
  seed: 42
cache:
  backend: memory
  ttl: 30s
recorder:
  enabled: true
  path: snapshots.db
  schedule: "*/15 * * * *"
stream:
  interval: 2s
  ping_interval: 30s
rate_limit:
  enabled: true
  burst: 20
  per_second: 10
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Environment != "test" {
		t.Errorf("Environment = %q, want %q", c.Environment, "test")
	}
	if c.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", c.Server.Port)
	}
	if c.Server.ReadTimeout != 5*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 5s", c.Server.ReadTimeout)
	}
	if c.Generator.Seed != 42 {
		t.Errorf("Generator.Seed = %d, want 42", c.Generator.Seed)
	}
	if c.Cache.TTL != 30*time.Second {
		t.Errorf("Cache.TTL = %v, want 30s", c.Cache.TTL)
	}
	if !c.Recorder.Enabled || c.Recorder.Schedule != "*/15 * * * *" {
		t.Errorf("Recorder = %+v, want enabled with schedule", c.Recorder)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load() expected error for missing file")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("NSESUITE_PORT", "9191")
	t.Setenv("NSESUITE_LOG_LEVEL", "warn")
	t.Setenv("NSESUITE_SEED", "7")

	c, err := LoadWithEnv(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("LoadWithEnv() error = %v", err)
	}
	if c.Server.Port != 9191 {
		t.Errorf("Server.Port = %d, want 9191 from env", c.Server.Port)
	}
	if c.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q from env", c.Log.Level, "warn")
	}
	if c.Generator.Seed != 7 {
		t.Errorf("Generator.Seed = %d, want 7 from env", c.Generator.Seed)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing environment", func(c *Config) { c.Environment = "" }, true},
		{"missing port", func(c *Config) { c.Server.Port = 0 }, true},
		{"bad cache backend", func(c *Config) { c.Cache.Backend = "memcached" }, true},
		{"redis backend without addr", func(c *Config) { c.Cache.Backend = "redis" }, true},
		{"recorder without path", func(c *Config) { c.Recorder.Path = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load(writeConfig(t, sampleYAML))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.mutate(c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaultsCacheBackend(t *testing.T) {
	c, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	c.Cache.Backend = ""
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if c.Cache.Backend != "memory" {
		t.Errorf("Cache.Backend = %q, want default %q", c.Cache.Backend, "memory")
	}
}
