package inventory

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no record exists for a device ID
var ErrNotFound = errors.New("device not found")

// Record is a persisted inventory entry for one device, keyed by the
// stable identity the device itself reports.
type Record struct {
	// DeviceID is the stable key (the device's reported identifier)
	DeviceID string `yaml:"device_id"`

	// IP is the address the device was last discovered at
	IP string `yaml:"ip"`

	// Name is the user-assigned speaker name
	Name string `yaml:"name"`

	// Model is the product model string
	Model string `yaml:"model,omitempty"`

	// MACAddress is the device's reported MAC, when known
	MACAddress string `yaml:"mac_address,omitempty"`

	// FirmwareVersion is the running firmware, when known
	FirmwareVersion string `yaml:"firmware_version,omitempty"`

	// LastSeen is when the device last completed a successful sync
	LastSeen time.Time `yaml:"last_seen"`
}

// Store is the persisted device inventory.
//
// Upsert is keyed by DeviceID: insert if absent, full-field update if
// present - never a duplicate record for the same ID. The sync engine only
// ever inserts and updates; deletion is an operator action.
type Store interface {
	Upsert(record Record) (Record, error)
	GetAll() ([]Record, error)
	GetByDeviceID(deviceID string) (Record, error)
	Delete(deviceID string) error
}
