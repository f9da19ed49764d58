package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	// Should not be empty
	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	// Should contain "wavetap"
	if !strings.Contains(configDir, "wavetap") {
		t.Errorf("GetConfigDir() = %v, should contain 'wavetap'", configDir)
	}

	// Platform-specific checks
	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin", "linux":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	// Should end with config.yaml
	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewSettings(t *testing.T) {
	settings := NewSettings()

	if settings.Version != 1 {
		t.Errorf("NewSettings().Version = %v, want 1", settings.Version)
	}

	if settings.Discovery == nil {
		t.Fatal("NewSettings().Discovery should not be nil")
	}

	if !settings.Discovery.Enabled {
		t.Error("NewSettings() discovery should be enabled by default")
	}

	if settings.Discovery.Vendor != DefaultVendor {
		t.Errorf("NewSettings().Discovery.Vendor = %v, want %v", settings.Discovery.Vendor, DefaultVendor)
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	settings, err := LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v, want nil for missing file", err)
	}

	if settings.Version != 1 {
		t.Errorf("missing file should yield defaults, got version %d", settings.Version)
	}
}

func TestLoadFrom_UnsupportedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("version: 99\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() should reject unsupported config versions")
	}
}

func TestLoadFrom_Normalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "version: 1\ndiscovery:\n  enabled: false\nmanual_ips:\n  - 10.0.0.5\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	settings, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if settings.Discovery.Enabled {
		t.Error("discovery.enabled should stay false")
	}

	if settings.Discovery.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("TimeoutSeconds = %d, want default %d", settings.Discovery.TimeoutSeconds, DefaultTimeoutSeconds)
	}

	if settings.Discovery.Vendor != DefaultVendor {
		t.Errorf("Vendor = %q, want default %q", settings.Discovery.Vendor, DefaultVendor)
	}

	if len(settings.ManualIPs) != 1 || settings.ManualIPs[0] != "10.0.0.5" {
		t.Errorf("ManualIPs = %v, want [10.0.0.5]", settings.ManualIPs)
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	settings := NewSettings()
	settings.ManualIPs = []string{"192.168.1.50", "192.168.1.51"}
	settings.Discovery.TimeoutSeconds = 8

	if err := settings.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if len(loaded.ManualIPs) != 2 {
		t.Errorf("ManualIPs count = %d, want 2", len(loaded.ManualIPs))
	}

	if loaded.DiscoveryTimeout() != 8*time.Second {
		t.Errorf("DiscoveryTimeout() = %v, want 8s", loaded.DiscoveryTimeout())
	}
}
