package inventory

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// fileFormat is the on-disk document: a version marker plus records keyed
// by device ID.
type fileFormat struct {
	Version int                `yaml:"version"`
	Devices map[string]*Record `yaml:"devices,omitempty"`
}

// FileStore is a Store backed by a single YAML file. Writes are atomic
// (temp file + rename) so a crash mid-save never corrupts the inventory.
type FileStore struct {
	path string

	mu      sync.Mutex
	records map[string]Record
}

// NewFileStore opens (or initializes) the inventory file at path.
// A missing file is not an error - the store starts empty and the file is
// created on the first write.
func NewFileStore(path string) (*FileStore, error) {
	store := &FileStore{
		path:    path,
		records: make(map[string]Record),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory file: %w", err)
	}

	var doc fileFormat
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse inventory file: %w", err)
	}
	if doc.Version != 1 {
		return nil, fmt.Errorf("unsupported inventory version: %d (expected 1)", doc.Version)
	}

	for deviceID, record := range doc.Devices {
		if record == nil {
			continue
		}
		record.DeviceID = deviceID
		store.records[deviceID] = *record
	}

	return store, nil
}

// Path returns the file the store persists to
func (s *FileStore) Path() string {
	return s.path
}

// Upsert inserts or fully updates the record for record.DeviceID and
// persists the change. The stored record is returned.
func (s *FileStore) Upsert(record Record) (Record, error) {
	if record.DeviceID == "" {
		return Record{}, fmt.Errorf("cannot upsert a record without a device_id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.records[record.DeviceID]
	s.records[record.DeviceID] = record

	if err := s.save(); err != nil {
		// A record that failed to persist must not remain visible
		if existed {
			s.records[record.DeviceID] = previous
		} else {
			delete(s.records, record.DeviceID)
		}
		return Record{}, err
	}
	return record, nil
}

// GetAll returns every record, ordered by device ID for stable output
func (s *FileStore) GetAll() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]Record, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].DeviceID < records[j].DeviceID
	})
	return records, nil
}

// GetByDeviceID returns the record for deviceID, or ErrNotFound
func (s *FileStore) GetByDeviceID(deviceID string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[deviceID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return record, nil
}

// Delete removes the record for deviceID and persists the change.
// Deleting an absent record returns ErrNotFound.
func (s *FileStore) Delete(deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, ok := s.records[deviceID]
	if !ok {
		return ErrNotFound
	}
	delete(s.records, deviceID)

	if err := s.save(); err != nil {
		s.records[deviceID] = previous
		return err
	}
	return nil
}

// save writes the inventory atomically. Caller must hold s.mu.
func (s *FileStore) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create inventory directory: %w", err)
	}

	doc := fileFormat{
		Version: 1,
		Devices: make(map[string]*Record, len(s.records)),
	}
	for deviceID := range s.records {
		record := s.records[deviceID]
		doc.Devices[deviceID] = &record
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}

	// Write to temporary file first (atomic write)
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary inventory file: %w", err)
	}

	// Atomic rename (this is atomic on all platforms)
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save inventory file: %w", err)
	}

	return nil
}
