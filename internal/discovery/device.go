package discovery

import (
	"fmt"
	"time"
)

// DefaultControlPort is the well-known SoundTouch control API port.
const DefaultControlPort = 8090

// Device represents a device found on the network, from any source.
// It is ephemeral - the sync engine resolves authoritative identity per
// device before anything is persisted.
type Device struct {
	// IP is the device's IPv4 address
	IP string

	// Port is the control API port (defaults to 8090 when not otherwise known)
	Port int

	// Name is the advertised friendly name, or a placeholder for
	// manually configured devices whose identity is resolved later
	Name string

	// Model is the advertised model name (empty for manual devices)
	Model string

	// MAC is the normalized serial from the description document,
	// empty when the source did not provide one
	MAC string

	// DiscoveredAt is when this record was produced
	DiscoveredAt time.Time
}

// BaseURL returns the device's control API base URL
func (d *Device) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", d.IP, d.Port)
}

// String returns a human-readable representation of the device
func (d *Device) String() string {
	if d.Model != "" {
		return fmt.Sprintf("%s (%s) at %s:%d", d.Name, d.Model, d.IP, d.Port)
	}
	return fmt.Sprintf("%s at %s:%d", d.Name, d.IP, d.Port)
}
