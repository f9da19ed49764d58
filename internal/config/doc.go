// Package config provides user configuration management for wavetap.
//
// This package manages a YAML-based configuration file that stores discovery
// preferences and the list of manually configured device addresses. The
// configuration follows OS-specific conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/wavetap/config.yaml or $HOME/.config/wavetap/config.yaml
//   - macOS: $HOME/.config/wavetap/config.yaml
//   - Windows: %LOCALAPPDATA%\wavetap\config.yaml
//
// # Usage Example
//
//	settings, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Pin a device that multicast cannot reach
//	settings.ManualIPs = append(settings.ManualIPs, "10.0.0.5")
//
//	// Save changes atomically
//	if err := settings.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global settings use sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
