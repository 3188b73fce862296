package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Create temporary config file
	content := `
persistence:
  backend: "redis"
  keyPrefix: "tenant-a:"

redis:
  host: "testredis"
  port: 6380

store:
  likeCooldown: "15s"
  historyLimit: 20

monetization:
  viewsThreshold: 4000

metrics:
  port: 9100
  pushGateway: "http://pushgateway:9091"
`

	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Load config
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Verify loaded values
	if cfg.Persistence.Backend != "redis" {
		t.Errorf("Expected backend redis, got %s", cfg.Persistence.Backend)
	}

	if cfg.Persistence.KeyPrefix != "tenant-a:" {
		t.Errorf("Expected key prefix tenant-a:, got %s", cfg.Persistence.KeyPrefix)
	}

	if cfg.Redis.Host != "testredis" || cfg.Redis.Port != 6380 {
		t.Errorf("Expected redis testredis:6380, got %s:%d", cfg.Redis.Host, cfg.Redis.Port)
	}

	if cfg.Store.LikeCooldown != 15*time.Second {
		t.Errorf("Expected like cooldown 15s, got %s", cfg.Store.LikeCooldown)
	}

	if cfg.Store.HistoryLimit != 20 {
		t.Errorf("Expected history limit 20, got %d", cfg.Store.HistoryLimit)
	}

	if cfg.Monetization.ViewsThreshold != 4000 {
		t.Errorf("Expected views threshold 4000, got %d", cfg.Monetization.ViewsThreshold)
	}

	if cfg.Metrics.Port != 9100 || cfg.Metrics.PushGateway != "http://pushgateway:9091" {
		t.Errorf("Expected metrics on 9100 pushing to pushgateway, got %+v", cfg.Metrics)
	}
}

func TestLoadDefaults(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())
	if _, err := tmpfile.Write([]byte("logging:\n  level: debug\n")); err != nil {
		t.Fatal(err)
	}
	tmpfile.Close()

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Store.LogRetention != 100 {
		t.Errorf("Expected log retention 100, got %d", cfg.Store.LogRetention)
	}

	if cfg.Monetization.Window != 30*24*time.Hour {
		t.Errorf("Expected 30 day window, got %s", cfg.Monetization.Window)
	}

	if cfg.Generator.MaxConcurrent != 3 {
		t.Errorf("Expected 3 concurrent generations, got %d", cfg.Generator.MaxConcurrent)
	}

	if cfg.Metrics.Port != 0 || cfg.Metrics.PushGateway != "" || cfg.Metrics.Job != "nexus" {
		t.Errorf("Expected metrics export disabled with job nexus, got %+v", cfg.Metrics)
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Expected error when loading nonexistent file")
	}
}
