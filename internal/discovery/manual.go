package discovery

import "time"

// manualName is the placeholder name for manually configured devices.
// Their real name is resolved from the device itself during sync.
const manualName = "SoundTouch"

// ManualSource turns a configured list of IP addresses into Device records
// without touching the network. No deduplication against other sources
// happens here - persisted records are deduplicated downstream by the
// identity the device itself reports.
type ManualSource struct{}

// Resolve emits one Device per configured IP with a placeholder name and
// the well-known control port. Given well-formed input this never fails.
func (ManualSource) Resolve(ips []string) []Device {
	devices := make([]Device, 0, len(ips))
	for _, ip := range ips {
		devices = append(devices, Device{
			IP:           ip,
			Port:         DefaultControlPort,
			Name:         manualName,
			DiscoveredAt: time.Now(),
		})
	}
	return devices
}
