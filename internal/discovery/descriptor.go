package discovery

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wavetap/wavetap/internal/logging"
)

// DefaultDescriptorTimeout is the HTTP timeout for fetching a single
// description document. Kept short - these are LAN devices.
const DefaultDescriptorTimeout = 3 * time.Second

// Descriptor is the normalized identity extracted from a device's XML
// description document.
type Descriptor struct {
	// IP is derived from the location URL's host component
	IP string

	// MAC is the dedup key: the uppercased serial number from the
	// description, or the IP when the device declares no serial. The IP
	// fallback is deliberate - a serial-less device that changes address
	// between runs will be treated as a new device.
	MAC string

	// Name is the device's friendlyName (always present - descriptors
	// without one are discarded)
	Name string

	// Model is the device's modelName (always present, same rule)
	Model string
}

// Fetcher retrieves and parses device description documents. Descriptors
// whose manufacturer does not match Vendor, or which lack a friendlyName
// or modelName, are discarded.
type Fetcher struct {
	// Client is the HTTP client used for description fetches
	Client *http.Client

	// Vendor is the expected manufacturer, matched as a case-insensitive
	// substring of the document's manufacturer element
	Vendor string
}

// NewFetcher creates a Fetcher that accepts descriptors from vendor
func NewFetcher(vendor string) *Fetcher {
	return &Fetcher{
		Client: &http.Client{Timeout: DefaultDescriptorTimeout},
		Vendor: vendor,
	}
}

// FetchAll fetches every location concurrently and returns accepted
// descriptors keyed by their dedup key. Failures are isolated per
// location: a dead URL, malformed XML, or a foreign device never affects
// the rest of the batch, and FetchAll itself never fails.
func (f *Fetcher) FetchAll(locations map[string]struct{}) map[string]Descriptor {
	descriptors := make(map[string]Descriptor)

	var mu sync.Mutex
	var wg sync.WaitGroup

	for location := range locations {
		wg.Add(1)
		go func(location string) {
			defer wg.Done()

			descriptor, err := f.fetchOne(location)
			if err != nil {
				event := "descriptor_skipped"
				var derr *Error
				if errors.As(err, &derr) {
					event = "descriptor_" + derr.Kind.String() + "_error"
				}
				logging.LogDiscovery("ssdp", event,
					zap.String("location", location),
					zap.Error(err))
				return
			}

			mu.Lock()
			descriptors[descriptor.MAC] = *descriptor
			mu.Unlock()
		}(location)
	}

	wg.Wait()
	return descriptors
}

// fetchOne retrieves and validates a single description document.
func (f *Fetcher) fetchOne(location string) (*Descriptor, error) {
	resp, err := f.Client.Get(location)
	if err != nil {
		return nil, newTransportError(location, "description fetch failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newTransportError(location,
			fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	root, err := parseXML(resp.Body)
	if err != nil {
		return nil, newParseError(location, "malformed description document", err)
	}

	manufacturer := findText(root, "manufacturer")
	if manufacturer == "" {
		return nil, newValidationError(location, "missing manufacturer")
	}
	if !strings.Contains(strings.ToLower(manufacturer), strings.ToLower(f.Vendor)) {
		return nil, newValidationError(location,
			fmt.Sprintf("manufacturer %q does not match vendor %q", manufacturer, f.Vendor))
	}

	name := findText(root, "friendlyName")
	model := findText(root, "modelName")
	if name == "" || model == "" {
		// Incomplete record - a device with blank required fields must
		// never reach the inventory
		return nil, newValidationError(location, "missing friendlyName or modelName")
	}

	parsed, err := url.Parse(location)
	if err != nil {
		return nil, newParseError(location, "unparseable location URL", err)
	}
	ip := parsed.Hostname()
	if ip == "" {
		return nil, newParseError(location, "location URL has no host", nil)
	}

	key := strings.ToUpper(findText(root, "serialNumber"))
	if key == "" {
		// Documented fallback: serial-less devices dedup by address
		key = ip
	}

	return &Descriptor{
		IP:    ip,
		MAC:   key,
		Name:  name,
		Model: model,
	}, nil
}
