package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Listen != ":8080" {
		t.Errorf("Listen = %q, want :8080", cfg.Server.Listen)
	}
	if cfg.Refresh.Std() != time.Second {
		t.Errorf("Refresh = %v, want 1s", cfg.Refresh.Std())
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
observer:
  latitude: 39.742476
  longitude: -105.1786
  elevation: 1830.14
  timezone: -7
atmosphere:
  pressure: 820
  temperature: 11
  refraction: 0.5667
surface:
  slope: 30
  azm_rotation: -10
server:
  listen: ":9000"
refresh: 5s
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Observer.Latitude != 39.742476 {
		t.Errorf("Latitude = %v, want 39.742476", cfg.Observer.Latitude)
	}
	if cfg.Observer.Timezone != -7 {
		t.Errorf("Timezone = %v, want -7", cfg.Observer.Timezone)
	}
	if cfg.Atmosphere.Pressure != 820 {
		t.Errorf("Pressure = %v, want 820", cfg.Atmosphere.Pressure)
	}
	if cfg.Surface.AzmRotation != -10 {
		t.Errorf("AzmRotation = %v, want -10", cfg.Surface.AzmRotation)
	}
	if cfg.Server.Listen != ":9000" {
		t.Errorf("Listen = %q, want :9000", cfg.Server.Listen)
	}
	if cfg.Refresh.Std() != 5*time.Second {
		t.Errorf("Refresh = %v, want 5s", cfg.Refresh.Std())
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "observer:\n  latitude: 47.37\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Observer.Latitude != 47.37 {
		t.Errorf("Latitude = %v, want 47.37", cfg.Observer.Latitude)
	}
	if cfg.Server.Listen != ":8080" {
		t.Errorf("Listen = %q, want default :8080", cfg.Server.Listen)
	}
	if cfg.Refresh.Std() != time.Second {
		t.Errorf("Refresh = %v, want default 1s", cfg.Refresh.Std())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() succeeded on a missing file")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("observer: ["), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() succeeded on malformed YAML")
	}
}

func TestLoadBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("refresh: soon\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() succeeded on an unparseable duration")
	}
}
