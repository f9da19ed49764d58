// Package discovery locates SoundTouch devices on the local network.
//
// Two sources feed discovery: an SSDP-style multicast probe followed by a
// descriptor fetch, and a manually configured IP list. The Aggregator
// merges both into a single device list for the sync engine.
//
// # Discovery Process
//
// The multicast path works as follows:
//  1. Send a single M-SEARCH datagram to 239.255.255.250:1900
//  2. Collect response datagrams until the response window expires
//  3. Extract each response's LOCATION header (a description document URL)
//  4. Fetch every description document concurrently
//  5. Keep descriptors whose manufacturer matches the expected vendor and
//     which carry a friendlyName and modelName
//
// The manual path emits a placeholder record per configured IP without any
// network traffic; real identity is resolved later when the sync engine
// queries the device directly.
//
// # Usage Example
//
//	agg := discovery.NewAggregator("Bose")
//	devices := agg.Discover(discovery.Options{
//	    EnableMulticast: true,
//	    ManualIPs:       []string{"10.0.0.5"},
//	    Timeout:         5 * time.Second,
//	})
//
// # Error Behavior
//
// Discovery never fails: socket errors, unreachable locations, malformed
// documents, and foreign devices all degrade to "no contribution" and are
// visible only in debug logs. An empty result is a valid outcome. The
// closed error kinds in this package (transport, parse, validation) exist
// so logs and tests can tell the cases apart.
//
// # Network Requirements
//
//   - Requires multicast support on the network interface
//   - Devices must be on the same local network segment (manual IPs are the
//     escape hatch for routed or multicast-filtered networks)
//
// # Thread Safety
//
// Prober, Fetcher, and Aggregator hold no mutable state per call and are
// safe for concurrent use.
package discovery
