package discovery

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wavetap/wavetap/internal/logging"
)

const (
	// MulticastAddr is the standard SSDP multicast group and port
	MulticastAddr = "239.255.255.250:1900"

	// DefaultSearchTarget matches SoundTouch devices, which advertise
	// as UPnP media renderers
	DefaultSearchTarget = "urn:schemas-upnp-org:device:MediaRenderer:1"

	// DefaultResponseWindow is the default time to collect responses.
	// Must be at least searchMX seconds - responders may legally delay
	// their reply that long.
	DefaultResponseWindow = 5 * time.Second

	// searchMX is the MX header value: the maximum number of seconds a
	// responder may wait before replying
	searchMX = 3

	// maxDatagramSize is the receive buffer size for response datagrams
	maxDatagramSize = 8192
)

// Prober sends an SSDP M-SEARCH over UDP multicast and collects the
// LOCATION headers of whatever answers within the response window.
//
// A raw socket is used instead of an SSDP library on purpose: libraries
// bind the well-known discovery port 1900, which is frequently held by an
// unrelated system service. Sending from an ephemeral port sidesteps that
// entirely - responses come back unicast to whatever port we sent from.
type Prober struct {
	// Addr is the group address datagrams are sent to. Overridable for
	// tests; defaults to MulticastAddr.
	Addr string
}

// NewProber creates a Prober targeting the standard SSDP multicast group
func NewProber() *Prober {
	return &Prober{Addr: MulticastAddr}
}

// Probe sends a single M-SEARCH for searchTarget and collects response
// locations until window elapses. This is a one-shot collection window,
// not a per-packet idle timeout: the deadline is set once, before the
// first read.
//
// Probe never returns an error. Socket failures during send or receive
// abandon collection and return whatever was gathered so far; an empty
// set is a valid result.
func (p *Prober) Probe(searchTarget string, window time.Duration) map[string]struct{} {
	locations := make(map[string]struct{})

	group, err := net.ResolveUDPAddr("udp4", p.Addr)
	if err != nil {
		logging.Warn("Invalid SSDP group address", zap.String("addr", p.Addr), zap.Error(err))
		return locations
	}

	// Bind an ephemeral local port; responses arrive unicast on it
	conn, err := net.ListenPacket("udp4", ":0")
	if err != nil {
		logging.Warn("SSDP socket open failed", zap.Error(err))
		return locations
	}
	defer conn.Close()

	request := buildSearchRequest(p.Addr, searchTarget)
	if _, err := conn.WriteTo([]byte(request), group); err != nil {
		logging.Warn("SSDP send failed", zap.Error(err))
		return locations
	}

	// One fixed deadline for the whole collection loop
	if err := conn.SetReadDeadline(time.Now().Add(window)); err != nil {
		logging.Warn("SSDP deadline set failed", zap.Error(err))
		return locations
	}

	buf := make([]byte, maxDatagramSize)
	for {
		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			// Either way collection ends with what we have, but only the
			// deadline firing is the normal end of the window
			if !isWindowExpiry(err) {
				logging.LogDiscovery("ssdp", "receive_error", zap.Error(err))
			}
			break
		}

		// Invalid bytes are tolerated - the string conversion never
		// fails, and header matching skips anything unrecognizable
		location := extractLocation(string(buf[:n]))
		if location == "" {
			logging.LogDiscovery("ssdp", "response_without_location",
				zap.String("from", addr.String()))
			continue
		}
		locations[location] = struct{}{}
	}

	logging.LogProbe(searchTarget, window, len(locations))
	return locations
}

// buildSearchRequest formats the M-SEARCH datagram. The MAN header value
// must be quoted per the SSDP spec.
func buildSearchRequest(host, searchTarget string) string {
	return fmt.Sprintf("M-SEARCH * HTTP/1.1\r\n"+
		"HOST: %s\r\n"+
		"MAN: \"ssdp:discover\"\r\n"+
		"MX: %d\r\n"+
		"ST: %s\r\n"+
		"\r\n", host, searchMX, searchTarget)
}

// isWindowExpiry reports whether err is the collection deadline firing,
// as opposed to a genuine socket failure.
func isWindowExpiry(err error) bool {
	return errors.Is(err, os.ErrDeadlineExceeded)
}

// extractLocation pulls the LOCATION header value out of an HTTP-style
// response datagram. The header name match is case-insensitive; the value
// is the trimmed remainder after the first colon. Returns "" if no
// LOCATION header is present.
func extractLocation(datagram string) string {
	for _, line := range strings.Split(datagram, "\n") {
		name, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "location") {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
