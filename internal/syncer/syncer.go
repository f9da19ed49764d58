package syncer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wavetap/wavetap/internal/discovery"
	"github.com/wavetap/wavetap/internal/inventory"
	"github.com/wavetap/wavetap/internal/logging"
	"github.com/wavetap/wavetap/internal/soundtouch"
)

// ErrSyncInProgress is returned when Sync is called while another Sync on
// the same Engine is still running. Overlapping runs are rejected rather
// than queued: discovery is expensive, and a second concurrent pass over
// the same network adds nothing.
var ErrSyncInProgress = errors.New("sync already in progress")

// Result is the aggregate outcome of one sync run.
// Discovered == Synced + Failed always holds.
type Result struct {
	// Discovered is how many devices discovery produced
	Discovered int

	// Synced is how many devices were resolved and persisted
	Synced int

	// Failed is how many devices could not be resolved or persisted
	Failed int
}

// Discoverer produces the device list to reconcile
type Discoverer interface {
	Discover(opts discovery.Options) []discovery.Device
}

// InfoClient resolves a device's authoritative identity
type InfoClient interface {
	GetInfo(ctx context.Context, baseURL string) (*soundtouch.DeviceInfo, error)
}

// Engine reconciles discovered devices into the inventory store.
//
// Each Engine owns its own single-flight lock: at most one Sync per Engine
// is in flight at a time, and a second caller fails fast with
// ErrSyncInProgress instead of blocking.
type Engine struct {
	discoverer Discoverer
	info       InfoClient
	store      inventory.Store
	opts       discovery.Options

	// running guards the single Sync in flight
	running sync.Mutex
}

// New creates an Engine wired to the given collaborators.
func New(discoverer Discoverer, info InfoClient, store inventory.Store, opts discovery.Options) *Engine {
	return &Engine{
		discoverer: discoverer,
		info:       info,
		store:      store,
		opts:       opts,
	}
}

// Sync discovers devices, resolves each one's identity, and upserts the
// results into the store.
//
// Devices are processed strictly sequentially to avoid flooding small
// embedded HTTP servers with simultaneous requests. A single device's
// failure - unreachable, malformed response, store write error - is
// counted in Failed and never aborts the batch. Sync is idempotent with
// respect to the store: an unchanged network yields an unchanged
// inventory, updated in place.
func (e *Engine) Sync(ctx context.Context) (*Result, error) {
	if !e.running.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer e.running.Unlock()

	start := time.Now()

	devices := e.discoverer.Discover(e.opts)
	result := &Result{Discovered: len(devices)}

	for i := range devices {
		device := &devices[i]
		deviceID, err := e.syncDevice(ctx, device)
		logging.LogDeviceSync(device.IP, deviceID, err)
		if err != nil {
			result.Failed++
			continue
		}
		result.Synced++
	}

	logging.LogSyncResult(result.Discovered, result.Synced, result.Failed, time.Since(start))
	return result, nil
}

// syncDevice resolves one device and persists it. Returns the device ID on
// success.
func (e *Engine) syncDevice(ctx context.Context, device *discovery.Device) (string, error) {
	info, err := e.info.GetInfo(ctx, device.BaseURL())
	if err != nil {
		return "", err
	}

	record := buildRecord(device, info)
	if _, err := e.store.Upsert(record); err != nil {
		return "", err
	}
	return record.DeviceID, nil
}

// buildRecord merges the device's self-reported identity with what
// discovery observed. The reported identity wins wherever present; the
// discovered IP is authoritative because it is the address the device was
// actually reached at.
func buildRecord(device *discovery.Device, info *soundtouch.DeviceInfo) inventory.Record {
	record := inventory.Record{
		DeviceID:        info.DeviceID,
		IP:              device.IP,
		Name:            info.Name,
		Model:           info.Type,
		MACAddress:      info.MACAddress,
		FirmwareVersion: info.FirmwareVersion,
		LastSeen:        time.Now(),
	}

	if record.Name == "" {
		record.Name = device.Name
	}
	if record.Model == "" {
		record.Model = device.Model
	}
	if record.MACAddress == "" {
		record.MACAddress = device.MAC
	}

	return record
}
