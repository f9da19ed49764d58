package config

import "time"

// Settings represents the entire user configuration file.
// This stores discovery preferences and the manual device list.
type Settings struct {
	Version   int        `yaml:"version"`
	Discovery *Discovery `yaml:"discovery,omitempty"`

	// ManualIPs lists devices that should always be considered discovered,
	// whether or not they answer multicast probes. Useful for devices on a
	// different subnet or networks that filter multicast.
	ManualIPs []string `yaml:"manual_ips,omitempty"`

	// StorePath overrides the default inventory file location.
	StorePath string `yaml:"store_path,omitempty"`
}

// Discovery represents multicast discovery preferences.
type Discovery struct {
	Enabled        bool   `yaml:"enabled"`
	TimeoutSeconds int    `yaml:"timeout_seconds"` // Response collection window
	Vendor         string `yaml:"vendor,omitempty"` // Manufacturer match string
}

// DefaultVendor is the manufacturer substring used to recognize
// SoundTouch description documents.
const DefaultVendor = "Bose"

// DefaultTimeoutSeconds is the default multicast response window.
const DefaultTimeoutSeconds = 5

// NewSettings creates Settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Discovery: &Discovery{
			Enabled:        true,
			TimeoutSeconds: DefaultTimeoutSeconds,
			Vendor:         DefaultVendor,
		},
	}
}

// Normalize fills in zero-valued fields with defaults. Called after loading
// so hand-edited config files with missing keys still behave sensibly.
func (s *Settings) Normalize() {
	if s.Discovery == nil {
		s.Discovery = &Discovery{Enabled: true}
	}
	if s.Discovery.TimeoutSeconds <= 0 {
		s.Discovery.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if s.Discovery.Vendor == "" {
		s.Discovery.Vendor = DefaultVendor
	}
}

// DiscoveryTimeout returns the configured response window as a duration.
func (s *Settings) DiscoveryTimeout() time.Duration {
	return time.Duration(s.Discovery.TimeoutSeconds) * time.Second
}
