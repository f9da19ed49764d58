package discovery

import (
	"time"

	"go.uber.org/zap"

	"github.com/wavetap/wavetap/internal/logging"
)

// Options controls a single discovery pass.
type Options struct {
	// EnableMulticast runs the SSDP probe and descriptor fetch
	EnableMulticast bool

	// ManualIPs are always included, reachable or not
	ManualIPs []string

	// Timeout is the multicast response window (DefaultResponseWindow
	// when zero)
	Timeout time.Duration

	// SearchTarget is the SSDP ST header value (DefaultSearchTarget
	// when empty)
	SearchTarget string
}

// locationProber collects description locations from the network.
type locationProber interface {
	Probe(searchTarget string, window time.Duration) map[string]struct{}
}

// descriptorFetcher resolves locations into validated descriptors.
type descriptorFetcher interface {
	FetchAll(locations map[string]struct{}) map[string]Descriptor
}

// Aggregator merges multicast discovery with the manual device list.
type Aggregator struct {
	prober  locationProber
	fetcher descriptorFetcher
	manual  ManualSource
}

// NewAggregator creates an Aggregator that probes the standard SSDP group
// and accepts descriptors from vendor.
func NewAggregator(vendor string) *Aggregator {
	return &Aggregator{
		prober:  NewProber(),
		fetcher: NewFetcher(vendor),
	}
}

// Discover runs the enabled sources and concatenates their results.
//
// The two sources are intentionally not deduplicated against each other:
// a device reachable both by multicast and by manual configuration yields
// two entries here, because the sync engine re-resolves true identity per
// device before persisting and the store dedups on that identity. A source
// contributing nothing - disabled, failed, or simply empty - never stops
// the other from contributing.
func (a *Aggregator) Discover(opts Options) []Device {
	var devices []Device

	if opts.EnableMulticast {
		devices = append(devices, a.discoverMulticast(opts)...)
	}

	if len(opts.ManualIPs) > 0 {
		devices = append(devices, a.manual.Resolve(opts.ManualIPs)...)
	}

	logging.Info("Discovery completed",
		zap.Bool("multicast", opts.EnableMulticast),
		zap.Int("manual", len(opts.ManualIPs)),
		zap.Int("devices", len(devices)),
	)

	return devices
}

// discoverMulticast runs the probe-then-fetch pipeline and converts the
// resulting descriptors into Device records.
func (a *Aggregator) discoverMulticast(opts Options) []Device {
	searchTarget := opts.SearchTarget
	if searchTarget == "" {
		searchTarget = DefaultSearchTarget
	}
	window := opts.Timeout
	if window <= 0 {
		window = DefaultResponseWindow
	}

	locations := a.prober.Probe(searchTarget, window)
	if len(locations) == 0 {
		return nil
	}

	descriptors := a.fetcher.FetchAll(locations)

	devices := make([]Device, 0, len(descriptors))
	for _, descriptor := range descriptors {
		devices = append(devices, Device{
			IP:           descriptor.IP,
			Port:         DefaultControlPort,
			Name:         descriptor.Name,
			Model:        descriptor.Model,
			MAC:          descriptor.MAC,
			DiscoveredAt: time.Now(),
		})
	}
	return devices
}
